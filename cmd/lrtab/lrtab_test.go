package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/lrtables/lr"
	"github.com/npillmayer/lrtables/lr/slr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const assignments = `
S -> L "=" R | R ;
L -> "*" R | id ;
R -> L ;
`

const danglingElse = `
S -> if E then S | if E then S else S | x ;
E -> e ;
`

func writeGrammar(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "test.grammar")
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuildTableMethods(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.cli")
	defer teardown()
	//
	g, err := readGrammar(writeGrammar(t, assignments))
	if !assert.NoError(t, err) {
		return
	}
	tests := []struct {
		method   string
		conflict bool
	}{
		{"slr", true},
		{"lr1", false},
		{"lalr", false},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			_, err := buildTable(g, tt.method, false)
			var c *lr.Conflict[string, string]
			assert.Equal(t, tt.conflict, errors.As(err, &c))
		})
	}
	_, err = buildTable(g, "glr", false)
	assert.Error(t, err)
}

func TestTableData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.cli")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := readGrammar(writeGrammar(t, assignments))
	if !assert.NoError(err) {
		return
	}
	table, err := buildTable(g, "lalr", false)
	if !assert.NoError(err) {
		return
	}
	data := tableData(table)
	assert.Equal([]string{"State", "*", "=", "id", "#eof", "L", "R", "S"}, data[0])
	assert.Len(data, len(table.States)+1)
	first := firstData(g)
	assert.Equal([]string{"L", "{* id}", ""}, first[1])
	follow := followData(g)
	assert.Equal([]string{"R", "{=}", "yes"}, follow[2])
	states := statesData(g, g.LR0Automaton())
	assert.Len(states, 10)
}

func TestParseTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.cli")
	defer teardown()
	assert := assert.New(t)
	//
	g, err := readGrammar(writeGrammar(t, danglingElse))
	if !assert.NoError(err) {
		return
	}
	table, err := buildTable(g, "slr", true)
	if !assert.NoError(err) {
		return
	}
	tree, err := parseTerminals(table.Compact(), []string{"if", "e", "then", "if", "e", "then", "x", "else", "x"})
	if assert.NoError(err) {
		assert.Equal(4, len(tree.Children), "else should bind to the inner if")
	}
	_, err = parseTerminals(table.Compact(), []string{"if", "e", "x"})
	var serr *slr.SyntaxError[string]
	assert.True(errors.As(err, &serr))
}

func TestCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrtables.cli")
	defer teardown()
	//
	path := writeGrammar(t, assignments)
	tests := []struct {
		args []string
		fail bool
	}{
		{[]string{"first", path}, false},
		{[]string{"follow", path}, false},
		{[]string{"states", path}, false},
		{[]string{"table", "--method", "lalr", path}, false},
		{[]string{"table", "--method", "slr", path}, true},
		{[]string{"dot", "-o", filepath.Join(t.TempDir(), "cfsm.dot"), path}, false},
		{[]string{"parse", "--method", "lalr", path, "*", "id", "=", "id"}, false},
		{[]string{"parse", "--method", "lalr", path, "=", "id"}, true},
		{[]string{"first", filepath.Join(t.TempDir(), "missing")}, true},
	}
	for _, tt := range tests {
		rootCmd.SetArgs(tt.args)
		err := Execute()
		if tt.fail {
			assert.Error(t, err, "%v", tt.args)
		} else {
			assert.NoError(t, err, "%v", tt.args)
		}
	}
}
