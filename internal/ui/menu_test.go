package ui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samplehost/internal/domain"
	"samplehost/internal/host"
)

func cmd(id, menu string) domain.Command {
	return domain.Command{ID: id, Label: id, Menu: menu, Run: func(context.Context) {}}
}

func TestGroupCommands(t *testing.T) {
	sections := groupCommands([]domain.Command{
		cmd("add-samples", "Samples"),
		cmd("about", ""),
		cmd("normalize", "Edit"),
		cmd("clear-samples", "Samples"),
	})

	require.Len(t, sections, 3)
	assert.Equal(t, "Samples", sections[0].Title)
	assert.Equal(t, []string{"add-samples", "clear-samples"}, ids(sections[0].Commands))
	assert.Equal(t, "", sections[1].Title)
	assert.Equal(t, "Edit", sections[2].Title)

	assert.Empty(t, groupCommands(nil))
}

func TestMenuBinder_RenderWithoutTrayIsNoop(t *testing.T) {
	table := host.NewCommandTable(nil, nil)
	binder := NewMenuBinder(table, nil)

	require.NoError(t, table.AddCommand(cmd("add-samples", "Samples")))
	binder.Attach(nil, nil)
	binder.Shutdown()
	assert.Nil(t, binder.menu)
}

func TestMenuBinder_InvokeRunsCommand(t *testing.T) {
	table := host.NewCommandTable(nil, nil)
	binder := NewMenuBinder(table, nil)
	ran := 0
	require.NoError(t, table.AddCommand(domain.Command{ID: "x", Label: "X", Run: func(context.Context) { ran++ }}))

	binder.invoke("x")
	binder.invoke("missing")
	assert.Equal(t, 1, ran)
}

func TestNewMenuBinder_RequiresTable(t *testing.T) {
	require.Panics(t, func() { NewMenuBinder(nil, nil) })
}

func ids(cmds []domain.Command) []string {
	out := make([]string, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.ID)
	}
	return out
}
