package daq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EnigmaNetz/Enigma-Go-DAQ/internal/module"
)

func TestConfig_Proto(t *testing.T) {
	cfg, reg := newTestConfig(t)
	require.NoError(t, cfg.SetInput("eth0"))
	require.NoError(t, cfg.SetSnaplen(1518))
	require.NoError(t, cfg.SetMode(ModePassive))
	require.NoError(t, cfg.SetFlag(FlagPromisc))
	require.NoError(t, cfg.SetVariable("a", strp("1")))
	require.NoError(t, cfg.SetVariable("b", nil))

	s, err := cfg.Proto(reg)
	require.NoError(t, err)

	m := s.AsMap()
	assert.Equal(t, "eth0", m["input"])
	assert.Equal(t, float64(1518), m["snaplen"])
	assert.Equal(t, "passive", m["mode"])
	assert.Equal(t, float64(1), m["flags"])

	mod := m["module"].(map[string]interface{})
	assert.Equal(t, "pcap", mod["name"])

	vars := m["variables"].([]interface{})
	require.Len(t, vars, 2)
	assert.Equal(t, map[string]interface{}{"key": "b", "value": nil}, vars[0])
	assert.Equal(t, map[string]interface{}{"key": "a", "value": "1"}, vars[1])

	data, err := MarshalJSON(s)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "eth0", decoded["input"])
}

func TestConfig_ProtoStaleModule(t *testing.T) {
	cfg, reg := newTestConfig(t)
	require.NoError(t, reg.Unregister(cfg.Module()))

	_, err := cfg.Proto(reg)
	assert.ErrorIs(t, err, module.ErrStaleHandle)

	s, err := cfg.Proto(nil)
	require.NoError(t, err, "without a registry the handle is exported unresolved")
	assert.NotNil(t, s.AsMap()["module"])
}

func TestConfig_ProtoNil(t *testing.T) {
	var cfg *Config
	_, err := cfg.Proto(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
