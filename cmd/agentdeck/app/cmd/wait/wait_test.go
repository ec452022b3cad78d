package wait

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseForCondition(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantStr string
		wantErr bool
	}{
		{
			name:    "delete",
			input:   "delete",
			wantStr: "delete",
		},
		{
			name:    "jsonpath with leading dot",
			input:   "jsonpath=.state.status=healthy",
			wantStr: "jsonpath=state.status=healthy",
		},
		{
			name:    "jsonpath without leading dot",
			input:   "jsonpath=state.status=healthy",
			wantStr: "jsonpath=state.status=healthy",
		},
		{
			name:    "jsonpath nested path",
			input:   "jsonpath=.spec.region=eu-west",
			wantStr: "jsonpath=spec.region=eu-west",
		},
		{
			name:    "jsonpath missing value",
			input:   "jsonpath=.state.status=",
			wantErr: true,
		},
		{
			name:    "jsonpath missing path",
			input:   "jsonpath==healthy",
			wantErr: true,
		},
		{
			name:    "jsonpath no equals",
			input:   "jsonpath=state.status",
			wantErr: true,
		},
		{
			name:    "unknown condition",
			input:   "ready",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := parseForCondition(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cond)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStr, cond.String())
			}
		})
	}
}

func TestDeleteCondition(t *testing.T) {
	d := deleteCondition{}

	assert.False(t, d.match(json.RawMessage(`{"state":{"status":"healthy"}}`)))
	assert.True(t, d.matchNotFound())
}

func TestJsonpathCondition(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value string
		data  json.RawMessage
		want  bool
	}{
		{
			name:  "status matches",
			path:  "state.status",
			value: "healthy",
			data:  json.RawMessage(`{"state":{"status":"healthy"}}`),
			want:  true,
		},
		{
			name:  "status differs",
			path:  "state.status",
			value: "healthy",
			data:  json.RawMessage(`{"state":{"status":"provisioning"}}`),
			want:  false,
		},
		{
			name:  "case insensitive match",
			path:  "state.status",
			value: "Healthy",
			data:  json.RawMessage(`{"state":{"status":"healthy"}}`),
			want:  true,
		},
		{
			name:  "path absent",
			path:  "state.status",
			value: "healthy",
			data:  json.RawMessage(`{"name":"support-bot"}`),
			want:  false,
		},
		{
			name:  "top level field",
			path:  "name",
			value: "support-bot",
			data:  json.RawMessage(`{"name":"support-bot"}`),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := jsonpathCondition{path: tt.path, value: tt.value}
			assert.Equal(t, tt.want, cond.match(tt.data))
		})
	}
}
