package service

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/sauhard98/sirion/model"
)

// Persisted entries: the JSON-serialized contract list and the id of
// the currently active contract (absent when none).
const (
	contractsKey      = "sirion_contracts"
	activeContractKey = "sirion_active_contract"
)

// ContractStore owns the authoritative in-memory contract list and the
// at-most-one active contract. Every mutation is mirrored to durable
// storage best-effort: a write failure is logged and never rolls back
// the in-memory change.
type ContractStore struct {
	mu        sync.RWMutex
	contracts []*model.Contract
	activeID  string
	kv        KV
}

// NewContractStore creates an empty store backed by kv. Callers are
// expected to Load before serving reads.
func NewContractStore(kv KV) *ContractStore {
	return &ContractStore{kv: kv}
}

// Load rehydrates the store from durable storage. Corrupt or missing
// data never fails the process: the store falls back to empty and the
// condition is logged. An active id that matches no loaded contract is
// dropped.
func (s *ContractStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contracts = nil
	s.activeID = ""

	raw, ok, err := s.kv.Get(contractsKey)
	if err != nil {
		slog.Error("failed to read persisted contracts", "error", err)
		return
	}
	if !ok {
		return
	}

	var contracts []*model.Contract
	if err := json.Unmarshal([]byte(raw), &contracts); err != nil {
		slog.Error("persisted contracts are corrupt, starting empty", "error", err)
		return
	}
	s.contracts = contracts

	activeID, ok, err := s.kv.Get(activeContractKey)
	if err != nil {
		slog.Error("failed to read persisted active contract", "error", err)
		return
	}
	if ok && s.findLocked(activeID) != nil {
		s.activeID = activeID
	}

	slog.Info("contract store loaded", "contracts", len(s.contracts), "active_id", s.activeID)
}

// Add appends a contract and makes it active.
func (s *ContractStore) Add(contract *model.Contract) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contracts = append(s.contracts, contract)
	s.activeID = contract.ID
	s.persistLocked()
}

// Remove deletes the contract with the given id; removing the active
// contract clears the active pointer. Unknown ids are a no-op.
func (s *ContractStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.contracts {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	s.contracts = append(s.contracts[:idx], s.contracts[idx+1:]...)
	if s.activeID == id {
		s.activeID = ""
	}
	s.persistLocked()
}

// SetActive switches the active pointer to a contract already in the
// list, or clears it when id is empty. Pointing at an unknown id is a
// no-op.
func (s *ContractStore) SetActive(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" && s.findLocked(id) == nil {
		return
	}
	s.activeID = id
	s.persistLocked()
}

// Get returns the contract with the given id, or nil.
func (s *ContractStore) Get(id string) *model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(id)
}

// List returns the contracts in upload order.
func (s *ContractStore) List() []*model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.Contract(nil), s.contracts...)
}

// Active returns the currently active contract, or nil.
func (s *ContractStore) Active() *model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return nil
	}
	return s.findLocked(s.activeID)
}

// ActiveID returns the active contract's id, or "".
func (s *ContractStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Count returns the number of contracts in the store.
func (s *ContractStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contracts)
}

// findLocked must be called with the lock held.
func (s *ContractStore) findLocked(id string) *model.Contract {
	for _, c := range s.contracts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// persistLocked mirrors the current state to durable storage. Must be
// called with the write lock held.
func (s *ContractStore) persistLocked() {
	data, err := json.Marshal(s.contracts)
	if err != nil {
		slog.Error("failed to serialize contracts", "error", err)
	} else if err := s.kv.Set(contractsKey, string(data)); err != nil {
		slog.Error("failed to persist contracts", "error", err)
	}

	if s.activeID == "" {
		if err := s.kv.Delete(activeContractKey); err != nil {
			slog.Error("failed to clear persisted active contract", "error", err)
		}
	} else if err := s.kv.Set(activeContractKey, s.activeID); err != nil {
		slog.Error("failed to persist active contract", "error", err)
	}
}
