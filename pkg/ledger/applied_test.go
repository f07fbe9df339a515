package ledger_test

import (
	"testing"
	"time"

	. "github.com/pseudomuto/migrun/pkg/ledger"
	"github.com/stretchr/testify/require"
)

func TestAppliedSet(t *testing.T) {
	now := time.Now()
	set := NewAppliedSet(
		&Entry{Identifier: "V1.0.0__init.sql", AppliedAt: now},
		&Entry{Identifier: "V1.0.1__Foo.sql", AppliedAt: now},
		&Entry{Identifier: "v1.0.1__foo.sql", AppliedAt: now.Add(time.Second)},
	)

	require.Equal(t, 2, set.Len())
	require.True(t, set.Contains("V1.0.0__INIT.SQL"))
	require.True(t, set.Contains("v1.0.1__foo.sql"))
	require.False(t, set.Contains("V1.0.2__bar.sql"))

	e, ok := set.Get("V1.0.1__FOO.sql")
	require.True(t, ok)
	require.Equal(t, "V1.0.1__Foo.sql", e.Identifier)
	require.Equal(t, now, e.AppliedAt)
}

func TestAppliedSetNil(t *testing.T) {
	var set *AppliedSet
	require.Equal(t, 0, set.Len())
	require.False(t, set.Contains("V1__init.sql"))
	require.Nil(t, set.Entries())

	_, ok := set.Get("V1__init.sql")
	require.False(t, ok)

	require.False(t, (&AppliedSet{}).Contains("V1__init.sql"))
}
