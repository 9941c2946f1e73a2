package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/cssmachine/pkg/adapters/memory"
	"github.com/aretw0/cssmachine/pkg/domain"
	"github.com/aretw0/cssmachine/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLibrary_Contract(t *testing.T) {
	m := domain.DefaultMachine()
	m.Name = "flipper"

	lib, err := memory.NewFromMachines(m, domain.MachineConfig{Name: "empty", TapeLength: 1})
	require.NoError(t, err)

	ports.RunMachineLibraryContract(t, lib, "flipper", m)
}

func TestNewFromMachines_Errors(t *testing.T) {
	_, err := memory.NewFromMachines(domain.MachineConfig{})
	assert.Error(t, err)

	m := domain.MachineConfig{Name: "dup"}
	_, err = memory.NewFromMachines(m, m)
	assert.Error(t, err)
}

func TestMemoryLibrary_PutAndCopy(t *testing.T) {
	ctx := context.Background()
	lib := memory.NewLibrary(nil)

	m := domain.DefaultMachine()
	lib.Put("default", m)

	got, err := lib.Get(ctx, "default")
	require.NoError(t, err)
	got.States[0].Name = "changed"

	again, err := lib.Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "A", again.States[0].Name)
}
