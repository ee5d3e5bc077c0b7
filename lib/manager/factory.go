package manager

import (
	"fmt"

	"github.com/ValentinKolb/dConf/lib/store"
	"github.com/ValentinKolb/dConf/lib/store/fstore"
	"github.com/ValentinKolb/dConf/lib/store/mstore"
	"github.com/ValentinKolb/dConf/lib/store/rstore"
	"github.com/hashicorp/go-hclog"
)

// Store types accepted by Open.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRemote = "remote"
	StoreRedis  = "redis" // alias of StoreRemote
)

// Options selects and configures the backend created by Open.
type Options struct {
	// StoreType is one of memory (default), file or remote.
	StoreType string
	// File configures the file backend.
	File fstore.Options
	// Remote configures the remote backend. Remote.Client is required.
	Remote rstore.Options
	// Logger receives lifecycle and operation events. Nil discards them.
	Logger hclog.Logger
}

// Open creates the backend named by opts.StoreType and returns a manager for it.
// Call Close on the manager when the host shuts down.
func Open(opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	storeType := opts.StoreType
	if storeType == "" {
		storeType = StoreMemory
	}

	logger.Info("initializing configuration manager", "store", storeType)

	var s store.IStore
	switch storeType {
	case StoreMemory:
		s = mstore.NewStore()
	case StoreFile:
		s = fstore.NewStore(opts.File)
	case StoreRemote, StoreRedis:
		var err error
		if s, err = rstore.NewStore(opts.Remote); err != nil {
			logger.Error("failed to create remote store", "error", err)
			return nil, err
		}
	default:
		return nil, store.NewError(store.KindConfigStore, fmt.Sprintf("unknown store type: %s", storeType))
	}

	logger.Info("configuration manager initialized", "store", storeType)
	return New(s, logger), nil
}
