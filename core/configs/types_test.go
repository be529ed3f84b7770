package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseChainKey(t *testing.T) {
	prefixed, err := ParseChainKey("0x0102ff", "addr")
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 255}, prefixed.PrivateKey)
	require.Equal(t, "addr", prefixed.Address)

	plain, err := ParseChainKey("0X0102FF", "")
	require.NoError(t, err)
	require.Equal(t, prefixed.PrivateKey, plain.PrivateKey)

	_, err = ParseChainKey("", "")
	require.Error(t, err)

	_, err = ParseChainKey("0xzz", "")
	require.Error(t, err)
}

func TestScenarioYaml(t *testing.T) {
	var scenario ScenarioConfig

	err := yaml.Unmarshal([]byte("name: x\noutputs: 2\namount: 3\ntimeout: 250ms\n"), &scenario)
	require.NoError(t, err)
	require.Equal(t, SignerAccount, scenario.SignedBy())
	require.Equal(t, 250*time.Millisecond, scenario.RunTimeout())
	require.Equal(t, uint64(6), scenario.Forward())

	err = yaml.Unmarshal([]byte("timeout: soon\n"), &scenario)
	require.Error(t, err)

	err = yaml.Unmarshal([]byte("signer: wallet\n"), &scenario)
	require.ErrorIs(t, err, ErrUnknownSigner)
}
