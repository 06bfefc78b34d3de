// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "github.com/danielhkuo/govote/models"

// requireOwner succeeds iff caller is the deployment-time owner.
func requireOwner(st *models.GovernanceState, caller string) error {
	if err := validateIdentity(caller); err != nil {
		return err
	}
	if caller != st.Owner {
		return ErrNotOwner
	}
	return nil
}

// requireAdmin succeeds iff caller is the owner or the emergency admin.
func requireAdmin(st *models.GovernanceState, caller string) error {
	if err := validateIdentity(caller); err != nil {
		return err
	}
	if caller == st.Owner {
		return nil
	}
	if st.EmergencyAdmin != nil && caller == *st.EmergencyAdmin {
		return nil
	}
	return ErrNotAdmin
}
