package util

import (
	"container/list"
	"os"
	"strconv"
	"sync"

	"gorm.io/gorm"
)

// LRU cache for patientID -> full name, used when denormalizing the patient
// name into recent updates and appointments.
type nameEntry struct {
	patientID uint
	name      string
}

type nameLRU struct {
	mu       sync.Mutex
	ll       *list.List
	cache    map[uint]*list.Element
	capacity int
}

var nameCache *nameLRU

// InitPatientNameCache initializes the LRU cache with given capacity.
// If capacity <= 0, a default of 1000 is used.
func InitPatientNameCache(capacity int) {
	if capacity <= 0 {
		capacity = 1000
	}
	nameCache = &nameLRU{
		ll:       list.New(),
		cache:    make(map[uint]*list.Element),
		capacity: capacity,
	}
}

// PatientNameCacheGet returns the name and true if present in cache.
func PatientNameCacheGet(patientID uint) (string, bool) {
	if nameCache == nil {
		return "", false
	}
	nameCache.mu.Lock()
	defer nameCache.mu.Unlock()
	if ele, ok := nameCache.cache[patientID]; ok {
		nameCache.ll.MoveToFront(ele)
		if e, ok := ele.Value.(nameEntry); ok {
			return e.name, true
		}
	}
	return "", false
}

// PatientNameCacheSet sets the name for a patientID in the cache.
func PatientNameCacheSet(patientID uint, name string) {
	if nameCache == nil {
		return
	}
	nameCache.mu.Lock()
	defer nameCache.mu.Unlock()
	if ele, ok := nameCache.cache[patientID]; ok {
		nameCache.ll.MoveToFront(ele)
		ele.Value = nameEntry{patientID: patientID, name: name}
		return
	}
	ele := nameCache.ll.PushFront(nameEntry{patientID: patientID, name: name})
	nameCache.cache[patientID] = ele
	if nameCache.ll.Len() > nameCache.capacity {
		// evict least recently used
		tail := nameCache.ll.Back()
		if tail != nil {
			if e, ok := tail.Value.(nameEntry); ok {
				delete(nameCache.cache, e.patientID)
			}
			nameCache.ll.Remove(tail)
		}
	}
}

// PatientNameCacheInvalidate drops a patientID from the cache, e.g. after a
// rename or deletion.
func PatientNameCacheInvalidate(patientID uint) {
	if nameCache == nil {
		return
	}
	nameCache.mu.Lock()
	defer nameCache.mu.Unlock()
	if ele, ok := nameCache.cache[patientID]; ok {
		nameCache.ll.Remove(ele)
		delete(nameCache.cache, patientID)
	}
}

// GetPatientName returns the full name for patientID using cache, falling
// back to DB. If found in DB, caches the result.
func GetPatientName(db *gorm.DB, patientID uint) string {
	if patientID == 0 {
		return ""
	}
	if name, ok := PatientNameCacheGet(patientID); ok {
		return name
	}
	if db == nil {
		return ""
	}
	var p struct{ FullName string }
	if err := db.Table("patients").Select("full_name").Where("id = ?", patientID).Take(&p).Error; err == nil {
		if p.FullName != "" {
			PatientNameCacheSet(patientID, p.FullName)
		}
		return p.FullName
	}
	return ""
}

// InitPatientNameCacheFromEnv initializes the cache using the env var PATIENT_NAME_CACHE_SIZE
func InitPatientNameCacheFromEnv() {
	sizeStr := os.Getenv("PATIENT_NAME_CACHE_SIZE")
	if sizeStr == "" {
		InitPatientNameCache(0)
		return
	}
	if n, err := strconv.Atoi(sizeStr); err == nil {
		InitPatientNameCache(n)
		return
	}
	InitPatientNameCache(0)
}
