package commands

import (
	"testing"
	"time"
	"wardreport/lib/timezone"
	"wardreport/services/notify"
	"wardreport/services/recommend"

	"github.com/stretchr/testify/require"
)

func TestResolveMemberWindow(t *testing.T) {
	today := time.Date(2017, time.September, 4, 10, 0, 0, 0, timezone.Location)

	window, err := resolveMemberWindow(notify.MemberConfig{Head: 0, Tail: 1}, today)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, recommend.Window{Start: "201709", End: "201710"}, window)

	_, err = resolveMemberWindow(notify.MemberConfig{Head: 1, Tail: -1}, today)
	require.ErrorContains(t, err, "after end")
}
