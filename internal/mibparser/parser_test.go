package mibparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mibcontext-mcp/pkg/types"
)

func TestParse_MinimalModule(t *testing.T) {
	source := `TEST-MIB DEFINITIONS ::= BEGIN
testObj OBJECT IDENTIFIER ::= { mib-2 99 }
END
`

	result, err := Parse(source)
	require.NoError(t, err)

	assert.Equal(t, "TEST-MIB", result.ModuleName)
	require.Len(t, result.Variables, 1)
	assert.Equal(t, "testObj", result.Variables[0].Name)
	assert.Equal(t, "1.3.6.1.2.1.99", result.Variables[0].OID.String())
	assert.Empty(t, result.Warnings)
}

func TestParse_WellKnownRoots(t *testing.T) {
	source := `TEST-MIB DEFINITIONS ::= BEGIN
END
`

	result, err := Parse(source)
	require.NoError(t, err)

	tests := []struct {
		name string
		want string
	}{
		{"iso", "1"},
		{"org", "1.3"},
		{"dod", "1.3.6"},
		{"internet", "1.3.6.1"},
		{"mgmt", "1.3.6.1.2"},
		{"mib-2", "1.3.6.1.2.1"},
		{"private", "1.3.6.1.4"},
		{"enterprises", "1.3.6.1.4.1"},
	}
	for _, tt := range tests {
		oid, ok := result.OIDForName(tt.name)
		require.True(t, ok, "root %s should resolve", tt.name)
		assert.Equal(t, tt.want, oid.String())
	}
}

func TestParse_EnterpriseAssignment(t *testing.T) {
	source := `MY-MODULE-MIB DEFINITIONS ::= BEGIN
IMPORTS
    MODULE-IDENTITY, OBJECT-TYPE, enterprises
        FROM SNMPv2-SMI;

myModule OBJECT IDENTIFIER ::= { enterprises 55108 }

END
`

	result, err := Parse(source)
	require.NoError(t, err)

	oid, ok := result.OIDForName("myModule")
	require.True(t, ok)
	assert.Equal(t, "1.3.6.1.4.1.55108", oid.String())

	assert.Contains(t, result.Imports, "MODULE-IDENTITY")
	assert.Contains(t, result.Imports, "OBJECT-TYPE")
	assert.Contains(t, result.Imports, "enterprises")
}

func TestParse_ModuleIdentityHeader(t *testing.T) {
	source := `IMPORTS
    MODULE-IDENTITY, enterprises FROM SNMPv2-SMI;

myModule MODULE-IDENTITY
    LAST-UPDATED "202401010000Z"
    ORGANIZATION "Example Org"
    DESCRIPTION "A module identified without a DEFINITIONS header."
    ::= { enterprises 55108 }

myObject OBJECT IDENTIFIER ::= { myModule 1 }

END
`

	result, err := Parse(source)
	require.NoError(t, err)
	assert.Equal(t, "myModule", result.ModuleName)

	oid, ok := result.OIDForName("myObject")
	require.True(t, ok)
	assert.Equal(t, "1.3.6.1.4.1.55108.1", oid.String())
}

func TestParse_MissingModuleHeader(t *testing.T) {
	source := `testObj OBJECT IDENTIFIER ::= { mib-2 99 }
END
`

	_, err := Parse(source)
	assert.ErrorIs(t, err, types.ErrMissingModuleHeader)
}

func TestParse_ObjectTypeBlock(t *testing.T) {
	source := `IF-TEST-MIB DEFINITIONS ::= BEGIN

ifAdminStatus OBJECT-TYPE
    SYNTAX INTEGER { up(1), down(2), testing(3) }
    MAX-ACCESS read-write
    STATUS current
    DESCRIPTION "The desired state of the interface."
    ::= { mib-2 7 }

END
`

	result, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, result.Variables, 1)

	v := result.Variables[0]
	assert.Equal(t, "ifAdminStatus", v.Name)
	assert.Equal(t, "1.3.6.1.2.1.7", v.OID.String())
	assert.Equal(t, "INTEGER { up(1), down(2), testing(3) }", v.Type)
	assert.Equal(t, "read-write", v.Access)
	assert.Equal(t, "current", v.Status)
	assert.Equal(t, "The desired state of the interface.", v.Description)
	assert.Equal(t, map[int64]string{1: "up", 2: "down", 3: "testing"}, v.EnumValues)
}

func TestParse_MultiLineDescription(t *testing.T) {
	source := `TEST-MIB DEFINITIONS ::= BEGIN

testObj OBJECT-TYPE
    SYNTAX Counter32
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION "The first fragment
second fragment
and the third fragment."
    ::= { mib-2 42 }

END
`

	result, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, result.Variables, 1)
	assert.Equal(t,
		"The first fragment second fragment and the third fragment.",
		result.Variables[0].Description)
}

func TestParse_DescriptionOnFollowingLine(t *testing.T) {
	// The common layout: the keyword alone, the quoted value indented below.
	source := `TEST-MIB DEFINITIONS ::= BEGIN

testObj OBJECT-TYPE
    SYNTAX Counter32
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION
        "A value that continues
        onto a second line."
    ::= { mib-2 42 }

END
`

	result, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, result.Variables, 1)
	assert.Equal(t,
		"A value that continues onto a second line.",
		result.Variables[0].Description)
}

func TestParse_UnitsClause(t *testing.T) {
	source := `TEST-MIB DEFINITIONS ::= BEGIN

sysUpTime OBJECT-TYPE
    SYNTAX TimeTicks
    MAX-ACCESS read-only
    STATUS current
    UNITS "centiseconds"
    DESCRIPTION "Time since the system was last re-initialized."
    ::= { mib-2 1 3 }

END
`

	result, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, result.Variables, 1)
	assert.Equal(t, "centiseconds", result.Variables[0].Units)
	assert.Equal(t, "1.3.6.1.2.1.1.3", result.Variables[0].OID.String())
}

func TestParse_ForwardReference(t *testing.T) {
	// child is declared before its parent; the resolver must still complete
	// the chain.
	source := `TEST-MIB DEFINITIONS ::= BEGIN
child OBJECT IDENTIFIER ::= { parent 2 }
parent OBJECT IDENTIFIER ::= { mib-2 1 }
END
`

	result, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, result.Variables, 2)
	assert.Empty(t, result.Warnings)

	oid, ok := result.OIDForName("child")
	require.True(t, ok)
	assert.Equal(t, "1.3.6.1.2.1.1.2", oid.String())
}

func TestParse_AssignmentShapes(t *testing.T) {
	source := `TEST-MIB DEFINITIONS ::= BEGIN
direct OBJECT IDENTIFIER ::= 1.3.6.1.4.1.9999
suffixed OBJECT IDENTIFIER ::= direct.5
aliased OBJECT IDENTIFIER ::= direct
braced OBJECT IDENTIFIER ::= { direct 7 }
named OBJECT IDENTIFIER ::= { iso org(3) dod(6) 1 }
END
`

	result, err := Parse(source)
	require.NoError(t, err)

	want := map[string]string{
		"direct":   "1.3.6.1.4.1.9999",
		"suffixed": "1.3.6.1.4.1.9999.5",
		"aliased":  "1.3.6.1.4.1.9999",
		"braced":   "1.3.6.1.4.1.9999.7",
		"named":    "1.3.6.1",
	}
	for name, wantOID := range want {
		oid, ok := result.OIDForName(name)
		require.True(t, ok, "%s should resolve", name)
		assert.Equal(t, wantOID, oid.String(), "oid for %s", name)
	}
}

func TestParse_SortedByNumericOID(t *testing.T) {
	source := `TEST-MIB DEFINITIONS ::= BEGIN
objTen OBJECT IDENTIFIER ::= { mib-2 1 10 }
objNine OBJECT IDENTIFIER ::= { mib-2 1 9 }
objTwo OBJECT IDENTIFIER ::= { mib-2 1 2 }
END
`

	result, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, result.Variables, 3)

	for i := 1; i < len(result.Variables); i++ {
		cmp := result.Variables[i-1].OID.Compare(result.Variables[i].OID)
		assert.Negative(t, cmp, "variables must be in ascending OID order")
	}
	assert.Equal(t, "objNine", result.Variables[1].Name)
	assert.Equal(t, "objTen", result.Variables[2].Name)
}

func TestParse_UnresolvedParentWarning(t *testing.T) {
	source := `TEST-MIB DEFINITIONS ::= BEGIN
orphan OBJECT IDENTIFIER ::= { nowhere 1 }
END
`

	result, err := Parse(source)
	require.NoError(t, err)
	assert.Empty(t, result.Variables)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "orphan", result.Warnings[0].Symbol)
	assert.Equal(t, "nowhere", result.Warnings[0].Parent)
	assert.Equal(t, types.StateUnresolved, result.Warnings[0].State)
}

func TestParse_FirstResolutionWins(t *testing.T) {
	// The direct numeric assignment is established first; a later brace
	// assignment of the same name must not overwrite it.
	source := `TEST-MIB DEFINITIONS ::= BEGIN
dup OBJECT IDENTIFIER ::= 1.3.6.1.4.1.1
dup OBJECT IDENTIFIER ::= { mib-2 55 }
END
`

	result, err := Parse(source)
	require.NoError(t, err)

	oid, ok := result.OIDForName("dup")
	require.True(t, ok)
	assert.Equal(t, "1.3.6.1.4.1.1", oid.String())
}

func TestParse_VariableForOID(t *testing.T) {
	source := `TEST-MIB DEFINITIONS ::= BEGIN

testObj OBJECT-TYPE
    SYNTAX INTEGER { on(1), off(2) }
    MAX-ACCESS read-only
    STATUS current
    DESCRIPTION "A switch."
    ::= { mib-2 99 }

END
`

	result, err := Parse(source)
	require.NoError(t, err)

	oid := types.OID{1, 3, 6, 1, 2, 1, 99}
	v, ok := result.VariableForOID(oid)
	require.True(t, ok)
	assert.Equal(t, "testObj", v.Name)
	assert.Equal(t, "on", v.EnumLabel(1))

	_, ok = result.VariableForOID(types.OID{1, 2, 3})
	assert.False(t, ok)
}

func TestParse_CommentsStripped(t *testing.T) {
	source := `-- leading comment
TEST-MIB DEFINITIONS ::= BEGIN
-- a comment between definitions
testObj OBJECT IDENTIFIER ::= { mib-2 99 }
END
`

	result, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, result.Variables, 1)
	assert.Equal(t, "testObj", result.Variables[0].Name)
}
