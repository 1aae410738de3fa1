package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-c", "-config", "-a"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"separate value", []string{"-c", "rm.json", "-x", "1"}, []string{"-c", "rm.json"}},
		{"equals form", []string{"-config=rm.json", "-d", "postgres://"}, []string{"-config=rm.json"}},
		{"order preserved", []string{"-a", ":3200", "-z", "-c", "rm.json"}, []string{"-a", ":3200", "-c", "rm.json"}},
		{"trailing flag without value", []string{"-c"}, []string{"-c"}},
		{"next flag is not a value", []string{"-c", "-a", ":3200"}, []string{"-c", "-a", ":3200"}},
		{"equals value may start with dash", []string{"-config=-odd.json"}, []string{"-config=-odd.json"}},
		{"repeats kept", []string{"-c", "one.json", "-c", "two.json"}, []string{"-c", "one.json", "-c", "two.json"}},
		{"positionals dropped", []string{"issue", "u1", "--", "-c", "x"}, []string{}},
		{"nothing allowed present", []string{"-x", "1", "verify"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, allowed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/etc/rm.json", ConfigPath([]string{"-c", "/etc/rm.json"}))
	assert.Equal(t, "/etc/rm.json", ConfigPath([]string{"-a", ":3200", "-config=/etc/rm.json"}))
	assert.Equal(t, "2.json", ConfigPath([]string{"-c", "1.json", "-config", "2.json"}))
	assert.Empty(t, ConfigPath([]string{"-x", "1", "issue"}))
}

func TestJsonConfigFlags_ReadsProcessArgs(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })

	os.Args = []string{"server", "-w", ":8080", "-c", "/srv/rememberme.json"}
	assert.Equal(t, "/srv/rememberme.json", JsonConfigFlags())
}

func TestPositional(t *testing.T) {
	valueFlags := []string{"-a", "-c", "-s"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"command after flags", []string{"-a", "host:1", "issue", "u1"}, []string{"issue", "u1"}},
		{"equals form skipped", []string{"-a=host:1", "verify"}, []string{"verify"}},
		{"flags between positionals", []string{"issue", "-s", "dir", "u1"}, []string{"issue", "u1"}},
		{"unknown flag keeps following value", []string{"-x", "revoke"}, []string{"revoke"}},
		{"double dash ends flags", []string{"-a", "h", "--", "-weird"}, []string{"-weird"}},
		{"empty", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Positional(tt.args, valueFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Positional() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
