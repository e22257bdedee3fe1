package appconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Production, EnvFlagToEnvironment("Production"))
	assert.Equal(t, Production, EnvFlagToEnvironment("prod"))
	assert.Equal(t, Development, EnvFlagToEnvironment("staging"))
	assert.Equal(t, Development, EnvFlagToEnvironment(""))
	assert.Equal(t, "test", Test.String())
}
