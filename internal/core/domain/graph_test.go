package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

func task(name string, deps ...string) *domain.Task {
	return &domain.Task{
		Name:         domain.NewInternedString(name),
		Dependencies: domain.NewInternedStrings(deps),
	}
}

func TestGraph_AddTask(t *testing.T) {
	g := domain.NewGraph()

	require.NoError(t, g.AddTask(task("task1")))

	err := g.AddTask(task("task1"))
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "task1", zErr.Metadata()["task_name"])
}

func TestGraph_AddTask_InvalidName(t *testing.T) {
	g := domain.NewGraph()

	for _, name := range []string{"", "a:b", "with space"} {
		err := g.AddTask(task(name))
		require.Error(t, err, "name %q", name)
		assert.ErrorContains(t, err, domain.ErrInvalidTaskName.Error())
	}
}

func TestGraph_Validate(t *testing.T) {
	tests := []struct {
		name        string
		tasks       []*domain.Task
		errContains string
	}{
		{
			name:        "Self cycle",
			tasks:       []*domain.Task{task("A", "A")},
			errContains: "cycle detected",
		},
		{
			name:        "Three node cycle",
			tasks:       []*domain.Task{task("A", "B"), task("B", "C"), task("C", "A")},
			errContains: "cycle detected",
		},
		{
			name:        "Missing dependency",
			tasks:       []*domain.Task{task("A", "ghost")},
			errContains: "missing dependency",
		},
		{
			name:  "Chain",
			tasks: []*domain.Task{task("A", "B"), task("B", "C"), task("C")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewGraph()
			for _, tk := range tt.tasks {
				require.NoError(t, g.AddTask(tk))
			}

			err := g.Validate()
			if tt.errContains == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestGraph_Validate_CycleMetadata(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(task("A", "B")))
	require.NoError(t, g.AddTask(task("B", "A")))

	err := g.Validate()
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "A -> B -> A", zErr.Metadata()["cycle"])
}

func TestGraph_WalkAndDependents(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(task("A", "B")))
	require.NoError(t, g.AddTask(task("B", "C")))
	require.NoError(t, g.AddTask(task("C")))
	require.NoError(t, g.AddTask(task("D", "C")))
	require.NoError(t, g.Validate())

	var executed []string
	for tk := range g.Walk() {
		executed = append(executed, tk.Name.String())
	}

	assert.Equal(t, []string{"C", "B", "A", "D"}, executed)
	assert.ElementsMatch(t,
		[]string{"B", "D"},
		domain.Strings(g.Dependents(domain.NewInternedString("C"))),
	)
}

func TestGraph_ConfigureTask(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTask(task("lint")))

	err := g.ConfigureTask(domain.NewInternedString("lint"), func(tk *domain.Task) {
		tk.Disabled = true
		tk.Name = domain.NewInternedString("renamed")
	})
	require.NoError(t, err)

	got, ok := g.GetTask(domain.NewInternedString("lint"))
	require.True(t, ok)
	assert.True(t, got.Disabled)
	assert.Equal(t, "lint", got.Name.String())

	err = g.ConfigureTask(domain.NewInternedString("missing"), func(*domain.Task) {})
	assert.ErrorContains(t, err, "task not found")
}
