//
// Copyright 2026 The FSSB Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package scratch

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fssb/fssb/domain"
	"github.com/fssb/fssb/mocks"
)

func TestDiscoverSlotsLayout(t *testing.T) {
	tr := &mocks.TraceeIface{}
	tr.On("DiscoverExecutableRegion", 42).Return(uint64(0x401000), nil)

	a := New(tr)
	slots, err := a.DiscoverSlots(42)
	require.NoError(t, err)

	for i := 0; i < domain.NumWriteSlots; i++ {
		require.Equal(t, uint64(0x401000)+uint64(i)*domain.WriteSlotSize, slots[i])
	}
	tr.AssertExpectations(t)
}

func TestDiscoverSlotsPropagatesError(t *testing.T) {
	tr := &mocks.TraceeIface{}
	tr.On("DiscoverExecutableRegion", 7).Return(uint64(0), errors.New("no-rx-region"))

	a := New(tr)
	_, err := a.DiscoverSlots(7)
	require.Error(t, err)
}

func TestFits(t *testing.T) {
	require.True(t, Fits(strings.Repeat("a", 255)))  // 256 bytes incl. NUL
	require.False(t, Fits(strings.Repeat("a", 256))) // 257 bytes incl. NUL
}
