package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/multitimer/internal/timers"
)

func TestFindTimer(t *testing.T) {
	t.Parallel()

	list := []timers.Timer{
		{ID: "1", Label: "Green tea"},
		{ID: "2", Label: "Soft boiled eggs"},
		{ID: "3", Label: "Pasta"},
		{ID: "4", Label: "Black tea"},
	}

	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{query: "tea", want: "1", ok: true},
		{query: "EGGS", want: "2", ok: true},
		{query: "pastta", want: "3", ok: true},
		{query: "blak tea", want: "4", ok: true},
		{query: "laundry", ok: false},
		{query: "  ", ok: false},
	}
	for _, tc := range cases {
		got, ok := FindTimer(list, tc.query)
		require.Equal(t, tc.ok, ok, "query %q", tc.query)
		if tc.ok {
			require.Equal(t, tc.want, got.ID, "query %q", tc.query)
		}
	}

	_, ok := FindTimer(nil, "tea")
	require.False(t, ok)
}
