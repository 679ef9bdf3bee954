package cmds

import (
	"bytes"
	"testing"

	yamlconfig "github.com/spikeekips/mitum-dao/launch/config/yaml"
	"github.com/stretchr/testify/suite"
)

type testDefaultConfig struct {
	suite.Suite
}

func (t *testDefaultConfig) TestNew() {
	flags := struct {
		DefaultConfig DefaultConfigCommand `cmd:"" name:"default-config"`
	}{
		DefaultConfig: NewDefaultConfigCommand(),
	}

	kctx, err := Context([]string{"default-config"}, &flags)
	t.NoError(err)

	var out bytes.Buffer
	flags.DefaultConfig.Out = &out
	flags.DefaultConfig.LogOutput = &bytes.Buffer{}

	t.NoError(kctx.Run())

	t.Contains(out.String(), "phase-durations")

	_, err = yamlconfig.Load(out.Bytes())
	t.NoError(err)
}

func TestDefaultConfig(t *testing.T) {
	suite.Run(t, new(testDefaultConfig))
}
