package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/xid"
	"golang.org/x/exp/slices"
)

type ProjectStatus uint8

const (
	StatusPending ProjectStatus = iota
	StatusApproved
	StatusRejected
)

func (self ProjectStatus) String() string {
	switch self {
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// ParseProjectStatus is the inverse of String, unknown input maps to pending.
func ParseProjectStatus(s string) ProjectStatus {
	switch s {
	case "approved":
		return StatusApproved
	case "rejected":
		return StatusRejected
	default:
		return StatusPending
	}
}

// Project is a submitter's request for approval, keyed by the submitter
// identity. The latest submission always wins.
type Project struct {
	Details string
	Status  ProjectStatus
}

// DefaultSupplyCeiling caps maxSupply of newly created collections.
const DefaultSupplyCeiling uint64 = 100

// Factory gatekeeps collection deployment: projects go through the
// submit -> approve/reject workflow and only still-approved submitters may
// clone a template into a new registry. Every operation is atomic under the
// factory lock; events get their sequence under a dedicated lock so
// collections can emit without contending on factory state.
type Factory struct {
	mtx     sync.RWMutex
	emitMtx sync.Mutex

	access        AccessControl
	addr          Address
	supplyCeiling uint64

	projects         map[Address]*Project
	collectionOwners map[Address]Address
	collections      map[Address]TokenRegistry

	template721  *Template
	template1155 *Template

	seq uint64
	out chan *Event
}

func NewFactory(owner Address) (self *Factory) {
	self = new(Factory)
	self.access = NewAccessControl(owner)
	self.addr = NewAddress()
	self.supplyCeiling = DefaultSupplyCeiling
	self.projects = make(map[Address]*Project)
	self.collectionOwners = make(map[Address]Address)
	self.collections = make(map[Address]TokenRegistry)
	self.template721 = NewTemplate(KindERC721)
	self.template1155 = NewTemplate(KindERC1155)
	return
}

func (self *Factory) WithAddress(addr Address) *Factory {
	self.addr = addr
	return self
}

func (self *Factory) WithSupplyCeiling(ceiling uint64) *Factory {
	self.supplyCeiling = ceiling
	return self
}

// WithEventBuffer turns on the event log output channel.
// Without it events are sequenced but dropped, which is what detached
// in-process use (and most tests) want.
func (self *Factory) WithEventBuffer(size int) *Factory {
	self.out = make(chan *Event, size)
	return self
}

// Output is the factory-wide event log, nil unless WithEventBuffer was used.
func (self *Factory) Output() <-chan *Event {
	return self.out
}

// SubmitProject registers or replaces the caller's project.
// Re-submission overwrites the previous entry and resets status to pending.
func (self *Factory) SubmitProject(caller Address, details string) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	self.projects[caller] = &Project{Details: details, Status: StatusPending}
	self.emit(&Event{
		Kind:      EventProjectSubmitted,
		Registry:  self.addr,
		Caller:    caller,
		Submitter: caller,
		Details:   details,
		Status:    StatusPending.String(),
	})
}

func (self *Factory) ApproveProject(caller, submitter Address) error {
	return self.decide(caller, submitter, StatusApproved, EventProjectApproved)
}

func (self *Factory) RejectProject(caller, submitter Address) error {
	return self.decide(caller, submitter, StatusRejected, EventProjectRejected)
}

// decide re-assigns status freely: an approved project may still be rejected
// later and vice versa, no state is terminal against re-decision.
func (self *Factory) decide(caller, submitter Address, status ProjectStatus, kind EventKind) error {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if !self.access.IsOwnerOrAdmin(caller) {
		return ErrNotAdmin
	}

	project, ok := self.projects[submitter]
	if !ok {
		// Deciding an unknown submitter materializes an empty entry,
		// the same way a zero-valued mapping slot behaves.
		project = new(Project)
		self.projects[submitter] = project
	}
	project.Status = status

	self.emit(&Event{
		Kind:      kind,
		Registry:  self.addr,
		Caller:    caller,
		Submitter: submitter,
		Details:   project.Details,
		Status:    status.String(),
	})
	return nil
}

func (self *Factory) AddAdmin(caller, admin Address) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	err = self.access.AddAdmin(caller, admin)
	if err != nil {
		return
	}
	self.emit(&Event{Kind: EventAdminAdded, Registry: self.addr, Caller: caller, Admin: admin})
	return
}

func (self *Factory) RemoveAdmin(caller, admin Address) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	err = self.access.RemoveAdmin(caller, admin)
	if err != nil {
		return
	}
	self.emit(&Event{Kind: EventAdminRemoved, Registry: self.addr, Caller: caller, Admin: admin})
	return
}

func (self *Factory) TransferOwnership(caller, newOwner Address) (err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	err = self.access.TransferOwnership(caller, newOwner)
	if err != nil {
		return
	}
	self.emit(&Event{Kind: EventOwnershipTransferred, Registry: self.addr, Caller: caller, NewOwner: newOwner})
	return
}

// CreateERC721Collection deploys a single-edition registry for an approved submitter.
func (self *Factory) CreateERC721Collection(caller Address, name, symbol, description string, maxSupply, royaltyFeeNumerator uint64) (*Collection721, error) {
	col, err := self.createCollection(caller, self.template721, name, symbol, description, maxSupply, royaltyFeeNumerator)
	if err != nil {
		return nil, err
	}
	return col.(*Collection721), nil
}

// CreateERC1155Collection deploys a multi-edition registry for an approved submitter.
func (self *Factory) CreateERC1155Collection(caller Address, name, symbol, description string, maxSupply, royaltyFeeNumerator uint64) (*Collection1155, error) {
	col, err := self.createCollection(caller, self.template1155, name, symbol, description, maxSupply, royaltyFeeNumerator)
	if err != nil {
		return nil, err
	}
	return col.(*Collection1155), nil
}

func (self *Factory) createCollection(caller Address, template *Template, name, symbol, description string, maxSupply, royaltyFeeNumerator uint64) (col TokenRegistry, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	project, ok := self.projects[caller]
	if !ok || project.Status != StatusApproved {
		return nil, ErrProjectNotApproved
	}
	if maxSupply > self.supplyCeiling {
		return nil, ErrExceedsSupplyCeiling
	}

	// The new registry initializes fully before the factory records anything,
	// both within this one atomic step. Royalty receiver starts zero, the
	// collection owner supplies one later if needed.
	addr := NewAddress()
	col = template.Clone(addr, self.emit)
	err = col.Initialize(caller, name, symbol, description, maxSupply, ZeroAddress, royaltyFeeNumerator)
	if err != nil {
		return nil, err
	}

	self.collections[addr] = col
	self.collectionOwners[addr] = caller

	// Provenance: the registry itself becomes a pending project under its own
	// address, so derivative workflows treat registries like any submission.
	self.projects[addr] = &Project{
		Details: fmt.Sprintf("Collection: %s - %s", name, description),
		Status:  StatusPending,
	}

	self.emit(&Event{
		Kind:                EventCollectionCreated,
		Registry:            self.addr,
		Caller:              caller,
		Collection:          addr,
		CollectionKind:      template.Kind(),
		Name:                name,
		Symbol:              symbol,
		Description:         description,
		MaxSupply:           maxSupply,
		RoyaltyFeeNumerator: royaltyFeeNumerator,
	})
	return
}

func (self *Factory) Address() Address {
	return self.addr
}

func (self *Factory) Owner() Address {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.access.Owner()
}

func (self *Factory) IsAdmin(who Address) bool {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.access.IsAdmin(who)
}

func (self *Factory) Admins() []Address {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	return self.access.Admins()
}

func (self *Factory) SupplyCeiling() uint64 {
	return self.supplyCeiling
}

func (self *Factory) Project(submitter Address) (out Project, ok bool) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	project, ok := self.projects[submitter]
	if ok {
		out = *project
	}
	return
}

// IsApproved mirrors the boolean view next to the status enum.
func (self *Factory) IsApproved(submitter Address) bool {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	project, ok := self.projects[submitter]
	return ok && project.Status == StatusApproved
}

func (self *Factory) CollectionOwner(addr Address) (creator Address, ok bool) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	creator, ok = self.collectionOwners[addr]
	return
}

func (self *Factory) Collection(addr Address) (TokenRegistry, error) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	col, ok := self.collections[addr]
	if !ok {
		return nil, ErrCollectionNotFound
	}
	return col, nil
}

func (self *Factory) CollectionAddresses() (out []Address) {
	self.mtx.RLock()
	defer self.mtx.RUnlock()
	for addr := range self.collections {
		out = append(out, addr)
	}
	slices.Sort(out)
	return
}

// emit stamps the event and puts it on the log. The send happens under the
// sequencing lock so the channel order matches the sequence order.
func (self *Factory) emit(event *Event) {
	self.emitMtx.Lock()
	defer self.emitMtx.Unlock()

	self.seq++
	event.Sequence = self.seq
	event.ID = xid.New().String()
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	if self.out != nil {
		self.out <- event
	}
}

// Restore* rebuild factory state from storage at boot. They bypass
// authorization and emit nothing.

func (self *Factory) RestoreOwner(owner Address) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.access = NewAccessControl(owner)
}

func (self *Factory) RestoreAdmin(admin Address) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.access.restoreAdmin(admin)
}

func (self *Factory) RestoreSequence(seq uint64) {
	self.emitMtx.Lock()
	defer self.emitMtx.Unlock()
	self.seq = seq
}

func (self *Factory) RestoreProject(submitter Address, details string, status ProjectStatus) {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	self.projects[submitter] = &Project{Details: details, Status: status}
}

func (self *Factory) RestoreCollection(snap CollectionSnapshot) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	var col TokenRegistry
	if snap.Kind == KindERC1155 {
		restored := NewCollection1155(snap.Address, self.emit)
		restored.restore(&snap)
		col = restored
	} else {
		restored := NewCollection721(snap.Address, self.emit)
		restored.restore(&snap)
		col = restored
	}

	self.collections[snap.Address] = col
	if !snap.Creator.IsZero() {
		self.collectionOwners[snap.Address] = snap.Creator
	}
}

// Sequence reports the last assigned event sequence number.
func (self *Factory) Sequence() uint64 {
	self.emitMtx.Lock()
	defer self.emitMtx.Unlock()
	return self.seq
}
