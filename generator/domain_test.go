package generator_test

import (
	"errors"
	"testing"

	"github.com/illmade-knight/datashare-deploy/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasProtocol(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		want    bool
		wantErr bool
	}{
		{name: "bare domain", domain: "example.com", want: false},
		{name: "https prefix", domain: "https://example.com", want: true},
		{name: "https mid-string is accepted", domain: "foo.https://example.com", want: true},
		{name: "http prefix is rejected", domain: "http://example.com", wantErr: true},
		{name: "http mid-string is rejected", domain: "foo.http://example.com", wantErr: true},
		{name: "empty", domain: "", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := generator.HasProtocol(tc.domain)
			if tc.wantErr {
				require.Error(t, err)
				var protoErr *generator.InvalidProtocolError
				require.True(t, errors.As(err, &protoErr))
				assert.Equal(t, tc.domain, protoErr.Domain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormatDomain(t *testing.T) {
	t.Run("prepends https to a bare domain", func(t *testing.T) {
		got, err := generator.FormatDomain("example.com")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got)
	})

	t.Run("returns a qualified domain unchanged", func(t *testing.T) {
		got, err := generator.FormatDomain("https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", got)
	})

	t.Run("rejects the insecure scheme", func(t *testing.T) {
		_, err := generator.FormatDomain("http://example.com")
		var protoErr *generator.InvalidProtocolError
		require.True(t, errors.As(err, &protoErr))
	})
}
