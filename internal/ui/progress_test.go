package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pharaoh/internal/domain"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressBar(&buf)

	// updates before the run starts are ignored
	p.Update(1, 1)
	p.Finish()
	assert.Empty(t, buf.String())

	p.Start(3)
	p.Observe(domain.TestResult{Name: "a"}, time.Millisecond)
	p.Observe(domain.TestResult{Name: "b", ActualStatus: 1}, time.Millisecond)
	p.Observe(domain.TestResult{Name: "c"}, time.Millisecond)
	p.Finish()

	assert.Equal(t, 2, p.passed)
	assert.Equal(t, 1, p.failed)
	assert.Contains(t, buf.String(), "success: 2")
	assert.Contains(t, buf.String(), "failed: 1")
}
