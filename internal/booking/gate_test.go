package booking

import "testing"

func TestCanDelete(t *testing.T) {
	owner := uint64(7)
	other := uint64(8)

	cases := []struct {
		name    string
		p       *Principal
		ownerID *uint64
		want    DeleteDecision
	}{
		{"owner deletes own booking", &Principal{UserID: owner}, &owner, DeleteAllowed},
		{"non-owner denied", &Principal{UserID: other}, &owner, DeleteDenied},
		{"admin deletes any booking", &Principal{UserID: other, Admin: true}, &owner, DeleteAllowed},
		{"anonymous denied on owned booking", nil, &owner, DeleteDenied},
		{"anonymous allowed on ownerless booking", nil, nil, DeleteAllowed},
		{"authenticated allowed on ownerless booking", &Principal{UserID: other}, nil, DeleteAllowed},
		{"admin allowed on ownerless booking", &Principal{UserID: other, Admin: true}, nil, DeleteAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanDelete(tc.p, tc.ownerID); got != tc.want {
				t.Errorf("CanDelete(%+v, %v) = %v, want %v", tc.p, tc.ownerID, got, tc.want)
			}
		})
	}
}
