package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

// DB is a thin wrapper around a Bolt database. It centralizes functions
// which interact with the database.
type DB struct {
	DB *bbolt.DB

	err  error
	once sync.Once
}

func (d *DB) init() error {
	d.once.Do(d._init)
	return d.err
}

var (
	bJobs        = []byte("jobs")
	bUsage       = []byte("stats")
	bComparisons = []byte("comparisons")

	buckets = [...][]byte{
		bJobs,
		bUsage,
		bComparisons,
	}
)

func (d *DB) _init() {
	err := d.DB.Update(func(tx *bbolt.Tx) error {
		for _, buck := range buckets {
			_, err := tx.CreateBucketIfNotExists(buck)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		d.err = fmt.Errorf("initialization error: %w", err)
	}
}

// Job
// -----------------------------------------------------------------------------

// Job represents one stored comparison upload, keyed by the content-hash ID
// handed out to the caller.
type Job struct {
	CreatedAt time.Time `json:"created_at"`
	Sum       string    `json:"sum"`
}

func (f Job) IsZero() bool {
	return f.Sum == ""
}

func (d *DB) HasJob(name string) (bool, error) {
	if err := d.init(); err != nil {
		return false, err
	}

	var has bool
	err := d.DB.View(func(tx *bbolt.Tx) error {
		has = tx.Bucket(bJobs).Get([]byte(name)) != nil
		return nil
	})
	return has, err
}

func (d *DB) PutJob(name string, j Job) error {
	if err := d.init(); err != nil {
		return err
	}

	encoded, err := json.Marshal(j)
	if err != nil {
		return err
	}

	return d.DB.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(bJobs).Put([]byte(name), encoded)
	})
}

func (d *DB) GetJob(name string) (Job, error) {
	if err := d.init(); err != nil {
		return Job{}, err
	}

	var buf []byte
	err := d.DB.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bJobs).Get([]byte(name))
		buf = append(buf, data...)
		return nil
	})
	if err != nil || len(buf) == 0 {
		return Job{}, err
	}

	var j Job
	err = json.Unmarshal(buf, &j)
	return j, err
}

// CachedStatistics
// -----------------------------------------------------------------------------

// CachedStatistics is the aggregate word-count breakdown for a previously
// computed comparison, stored at upload time so later views of the same job
// report the numbers computed then.
type CachedStatistics struct {
	Insertions int `json:"ins"`
	Deletions  int `json:"del"`
	Moves      int `json:"mov"`
	Unchanged  int `json:"unc"`
}

func (s CachedStatistics) IsZero() bool {
	return s == CachedStatistics{}
}

// GetStatistics looks up a cached comparison's statistics by job ID. It
// returns the zero value and no error if nothing is cached yet.
func (d *DB) GetStatistics(name string) (CachedStatistics, error) {
	if err := d.init(); err != nil {
		return CachedStatistics{}, err
	}

	var buf []byte
	err := d.DB.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bComparisons).Get([]byte(name))
		buf = append(buf, data...)
		return nil
	})
	if err != nil || len(buf) == 0 {
		return CachedStatistics{}, err
	}

	var s CachedStatistics
	err = json.Unmarshal(buf, &s)
	return s, err
}

func (d *DB) PutStatistics(name string, s CachedStatistics) error {
	if err := d.init(); err != nil {
		return err
	}

	encoded, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return d.DB.Batch(func(tx *bbolt.Tx) error {
		return tx.Bucket(bComparisons).Put([]byte(name), encoded)
	})
}

// UsageStat
// -----------------------------------------------------------------------------

type UsageStat struct {
	Period   string `json:"p"`
	NumBytes uint64 `json:"nb"`
	NumCalls uint64 `json:"nc"`
}

type UploadLimits struct {
	MaxBytes uint64
	MaxCalls uint64
}

var ErrLimitsExceeded = errors.New("limits exceeded")

// AddAmountsAndCompare increases the stats for name, and ensures that the
// updated stats are within the given limits. If the limits are exceeded,
// [ErrLimitsExceeded] is returned.
func (d *DB) AddAmountsAndCompare(name string, deltaStat UsageStat, limits UploadLimits) error {
	if err := d.init(); err != nil {
		return err
	}
	err := d.DB.Batch(func(tx *bbolt.Tx) error {
		// get the current value of stat, if any.
		bk := tx.Bucket(bUsage)
		val := bk.Get([]byte(name))
		var stat UsageStat
		if len(val) != 0 {
			if err := json.Unmarshal(val, &stat); err != nil {
				return err
			}
		}

		// increase the values in stat.
		if stat.Period == deltaStat.Period {
			stat.NumCalls += deltaStat.NumCalls
			stat.NumBytes += deltaStat.NumBytes
		} else {
			// if the period switched, use the new deltaStat directly.
			stat = deltaStat
		}

		// if the values exceed the limits, return an error.
		if stat.NumBytes > limits.MaxBytes ||
			stat.NumCalls > limits.MaxCalls {
			return ErrLimitsExceeded
		}

		// set the new stats.
		res, err := json.Marshal(stat)
		if err != nil {
			return err
		}
		return bk.Put([]byte(name), res)
	})
	return err
}
