package store

// Storages groups the persistence layers used by the service layer.
type Storages struct {
	ObjectStore          ObjectStore
	VaultEntryRepository VaultEntryRepository
}

func NewStorages(objects ObjectStore, entries VaultEntryRepository) *Storages {
	return &Storages{
		ObjectStore:          objects,
		VaultEntryRepository: entries,
	}
}
