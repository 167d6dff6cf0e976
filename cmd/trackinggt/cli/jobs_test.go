package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRequiresCommand(t *testing.T) {
	c := &JobsCLI{}
	err := c.Run(context.Background(), nil, &bytes.Buffer{})
	assert.EqualError(t, err, Usage)
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	c := &JobsCLI{}
	err := c.Run(context.Background(), []string{"purge"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, `unknown command "purge"`)
}

func TestTriggerWithoutClient(t *testing.T) {
	var c *JobsCLI
	_, err := c.Trigger(context.Background(), "logistics:sync")
	assert.Error(t, err)
}

func TestTriggerRejectsUnsupportedJob(t *testing.T) {
	c := &JobsCLI{}
	_, err := c.Trigger(context.Background(), "mail:send")
	assert.Error(t, err)
}

func TestInspectWithoutInspector(t *testing.T) {
	c := &JobsCLI{}
	_, err := c.InspectQueue()
	assert.Error(t, err)
}
