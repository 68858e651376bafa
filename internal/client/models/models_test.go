package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormFromPairs_OK(t *testing.T) {
	f, err := FormFromPairs([]string{"from=u1", "to=u2", "note=a=b"})
	require.NoError(t, err)
	require.Equal(t, Form{"from": "u1", "to": "u2", "note": "a=b"}, f)
}

func TestFormFromPairs_ErrorOnMalformed(t *testing.T) {
	_, err := FormFromPairs([]string{"from=u1", "justname"})
	require.ErrorIs(t, err, ErrIncorrectField)

	_, err = FormFromPairs([]string{"=value"})
	require.ErrorIs(t, err, ErrIncorrectField)
}

func TestConnectionPair_IsUnordered(t *testing.T) {
	a := Connection{From: "u1", To: "u2"}
	b := Connection{From: "u2", To: "u1", Status: "pending"}
	require.Equal(t, a.Pair(), b.Pair())
	require.Equal(t, Pair{A: "u1", B: "u2"}, b.Pair())
}

func TestNotificationsValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Notifications
		wantErr bool
	}{
		{name: "empty", in: Notifications{}},
		{
			name: "distinct pairs",
			in: Notifications{
				Friends: []Connection{{From: "u1", To: "u2"}},
				Accept:  []Connection{{From: "u3", To: "u1"}},
				Request: []Connection{{From: "u1", To: "u4"}},
			},
		},
		{
			name: "same pair in friends and accept",
			in: Notifications{
				Friends: []Connection{{From: "u1", To: "u2"}},
				Accept:  []Connection{{From: "u2", To: "u1"}},
			},
			wantErr: true,
		},
		{
			name: "same pair twice in request",
			in: Notifications{
				Request: []Connection{{From: "u1", To: "u2"}, {From: "u1", To: "u2"}},
			},
		},
		{
			name: "both directions in friends",
			in: Notifications{
				Friends: []Connection{{From: "u1", To: "u2"}, {From: "u2", To: "u1"}},
			},
		},
		{
			name: "repeat in request then same pair in accept",
			in: Notifications{
				Accept:  []Connection{{From: "u2", To: "u1"}},
				Request: []Connection{{From: "u1", To: "u2"}, {From: "u2", To: "u1"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrDuplicatePair)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNotificationsClone_NormalizesAndDetaches(t *testing.T) {
	src := Notifications{Friends: []Connection{{From: "u1", To: "u2"}}}
	c := src.Clone()

	require.NotNil(t, c.Accept)
	require.NotNil(t, c.Request)
	require.Len(t, c.Friends, 1)

	c.Friends[0].Status = "changed"
	require.Empty(t, src.Friends[0].Status)
}

func TestNotificationsStatusOf(t *testing.T) {
	n := Notifications{
		Friends: []Connection{{From: "u2", To: "u1"}},
		Accept:  []Connection{{From: "u3", To: "u1"}},
		Request: []Connection{{From: "u1", To: "u4"}},
	}

	require.Equal(t, PairFriends, n.StatusOf("u1", "u2"))
	require.Equal(t, PairPending, n.StatusOf("u1", "u3"))
	require.Equal(t, PairRequested, n.StatusOf("u1", "u4"))
	require.Equal(t, PairNone, n.StatusOf("u1", "u5"))
}

func TestNotificationsJSON_UsesServerKeys(t *testing.T) {
	raw := `{"friends":[{"_id":"n1","from":"u1","to":"u2","status":"accepted"}],"accept":[],"request":[]}`
	var n Notifications
	require.NoError(t, json.Unmarshal([]byte(raw), &n))
	require.Equal(t, []Connection{{ID: "n1", From: "u1", To: "u2", Status: "accepted"}}, n.Friends)
	require.Empty(t, n.Accept)
}
