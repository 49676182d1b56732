package registry

import (
	"golang.org/x/exp/slices"
)

// AccessControl is the shared owner/admin capability composed into the factory
// and into every collection. It holds no lock of its own, the containing
// registry serializes access together with the rest of its state.
type AccessControl struct {
	owner  Address
	admins map[Address]bool
}

func NewAccessControl(owner Address) AccessControl {
	return AccessControl{owner: owner}
}

func (self *AccessControl) Owner() Address {
	return self.owner
}

func (self *AccessControl) IsOwner(caller Address) bool {
	return caller == self.owner
}

func (self *AccessControl) IsAdmin(who Address) bool {
	return self.admins[who]
}

func (self *AccessControl) IsOwnerOrAdmin(who Address) bool {
	return self.IsOwner(who) || self.IsAdmin(who)
}

// TransferOwnership is immediate and total, the old owner loses every
// owner-gated right in the same step.
func (self *AccessControl) TransferOwnership(caller, newOwner Address) error {
	if !self.IsOwner(caller) {
		return ErrUnauthorized
	}
	self.owner = newOwner
	return nil
}

// AddAdmin is owner-gated. Admins cannot promote peers.
func (self *AccessControl) AddAdmin(caller, admin Address) error {
	if !self.IsOwner(caller) {
		return ErrUnauthorized
	}
	if self.admins == nil {
		self.admins = make(map[Address]bool)
	}
	self.admins[admin] = true
	return nil
}

func (self *AccessControl) RemoveAdmin(caller, admin Address) error {
	if !self.IsOwner(caller) {
		return ErrUnauthorized
	}
	delete(self.admins, admin)
	return nil
}

func (self *AccessControl) Admins() (out []Address) {
	for admin := range self.admins {
		out = append(out, admin)
	}
	slices.Sort(out)
	return
}

// restoreAdmin rebuilds the admin set from storage, bypassing the owner gate.
func (self *AccessControl) restoreAdmin(admin Address) {
	if self.admins == nil {
		self.admins = make(map[Address]bool)
	}
	self.admins[admin] = true
}
