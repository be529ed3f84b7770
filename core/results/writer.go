package results

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// checkFileExists is a simple stat check to ensure that the file
// exists at the given path.
func checkFileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// checkIsRegular checks if the file is a regular file, else it's a special
// file (that can't be copied)
func checkIsRegular(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}

	return stat.Mode().IsRegular()
}

// copyFile copies a file from the source to the destination.
// Note: It can only copy regular files.
func copyFile(fromPath string, toPath string) error {
	// Make sure we can copy the configurations
	if !checkIsRegular(fromPath) {
		return fmt.Errorf("%s is not a regular file that can be copied", fromPath)
	}

	// Open and check the files
	source, err := os.Open(fromPath)
	if err != nil {
		return err
	}
	defer source.Close()

	dest, err := os.Create(toPath)
	if err != nil {
		return err
	}
	defer dest.Close()

	_, err = io.Copy(dest, source)

	return err
}

// writeResults marshals the data into JSON and writes the result as a JSON file
func writeResults(path string, data AggregatedResults) error {
	f, err := json.MarshalIndent(data, "", " ")

	if err != nil {
		return err
	}

	return os.WriteFile(path, f, 0644)
}

// WriteResultsToFile bundles all result information into a given directory,
// writing the results to a JSON as well as the benchmark configuration file
// when the benchmark was read from one. It returns the path of the results.
func WriteResultsToFile(benchConfig string, results AggregatedResults, resultDir string) (string, error) {
	// First, check that the directory exists
	if !checkFileExists(resultDir) {
		err := os.MkdirAll(resultDir, 0755)
		if err != nil {
			return "", err
		}
	}

	ts := time.Now().Format("20060102T150405")
	path := filepath.Join(resultDir, fmt.Sprintf("%s_results.json", ts))

	// Write the results to file
	err := writeResults(path, results)
	if err != nil {
		return "", err
	}

	// Premade benchmarks have no file to copy
	if benchConfig == "" {
		return path, nil
	}

	return path, copyFile(benchConfig, filepath.Join(resultDir, fmt.Sprintf("%s_workload.yaml", ts)))
}
