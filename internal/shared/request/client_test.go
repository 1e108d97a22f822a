package request_test

import (
	"testing"

	"nova-hris/internal/shared/request"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	tests := []struct {
		name   string
		header string
		ua     string
		want   request.ClientType
	}{
		{"header wins", "Mobile", "Mozilla/5.0", request.ClientMobile},
		{"browser", "", "Mozilla/5.0 (X11; Linux x86_64)", request.ClientWeb},
		{"android", "", "okhttp/4.12.0", request.ClientMobile},
		{"curl", "", "curl/8.5.0", request.ClientAPI},
		{"empty", "", "", request.ClientAPI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, request.ResolveClientType(tt.header, tt.ua))
		})
	}
	assert.True(t, request.IsWebClient(request.ClientWeb))
}
