package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAgentdeckCommandRegistersCoreCommands(t *testing.T) {
	cmd := NewAgentdeckCommand()

	registered := map[string]bool{}
	for _, c := range cmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range []string{"login", "logout", "whoami", "deployment", "status", "wait", "billing", "version"} {
		assert.True(t, registered[name], "%s command should be registered in the root CLI", name)
	}
}
