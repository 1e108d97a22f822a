package sanitize_test

import (
	"testing"

	"nova-hris/internal/shared/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "family trip", sanitize.Text("  <b>family</b> trip "))
	assert.Equal(t, "", sanitize.Text(`<script>alert(1)</script>`))
	assert.Equal(t, "", sanitize.Text("   "))
}

func TestText_KeepsPunctuation(t *testing.T) {
	assert.Equal(t, "doctor's note & receipt", sanitize.Text("doctor's note & receipt"))
}
