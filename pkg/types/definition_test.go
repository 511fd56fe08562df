package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefinitionValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr bool
	}{
		{
			name: "direct numeric assignment has no parent or index",
			def:  Definition{Name: "acme", Kind: KindObjectIdentifier},
		},
		{
			name: "alias carries only a parent",
			def:  Definition{Name: "alias", Kind: KindObjectIdentifier, Parent: "acme"},
		},
		{
			name: "brace form carries parent and index",
			def: Definition{
				Name: "acmeDevice", Kind: KindObjectType,
				Parent: "acme", Index: []uint32{1},
			},
		},
		{
			name:    "missing name",
			def:     Definition{Kind: KindObjectIdentifier},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			def:     Definition{Name: "acme", Kind: DefinitionKind("table")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolutionStateString(t *testing.T) {
	assert.Equal(t, "resolved", StateResolved.String())
	assert.Equal(t, "unresolved", StateUnresolved.String())
	assert.Equal(t, "cycle", StateCycle.String())
}
