package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type testLogging struct {
	suite.Suite
}

func (t *testLogging) TestModuleFieldKept() {
	buf := bytes.NewBuffer(nil)

	lg := NewModuleLogging("ballot-list")
	_ = lg.SetLogger(zerolog.New(buf))

	lg.Log().Info().Msg("hello")
	t.Contains(buf.String(), `"module":"ballot-list"`)
	t.Contains(buf.String(), `"message":"hello"`)
}

func (t *testLogging) TestSetLogging() {
	buf := bytes.NewBuffer(nil)

	a := Setup(buf, zerolog.InfoLevel, "json", false)

	b := NewModuleLogging("blind-vote")
	_ = b.SetLogging(a)

	b.Log().Debug().Msg("debug is filtered")
	b.Log().Info().Msg("info")

	t.NotContains(buf.String(), "debug is filtered")
	t.Contains(buf.String(), `"module":"blind-vote"`)
}

func (t *testLogging) TestOutputsEmpty() {
	_, err := Outputs(nil)
	t.Error(err)
}

func TestLoggingSetup(t *testing.T) {
	suite.Run(t, new(testLogging))
}
