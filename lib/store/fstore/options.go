package fstore

import (
	"github.com/spf13/afero"
)

// DefaultPath is the data file used when Options.Path is empty.
const DefaultPath = "./config/dynamic.json"

// Options configures a file store. The zero value is usable.
type Options struct {
	// Path of the JSON data file. Missing parent directories are created.
	Path string
	// Pretty enables two-space indentation of the data file (default true).
	Pretty *bool
	// Fs is the filesystem the store works on (default: the OS filesystem).
	Fs afero.Fs
	// WaitForWrite makes Set and Delete return only after their own persistence
	// job has run (default true). A failed job is reported, never returned.
	WaitForWrite *bool
	// OnWriteError is called from the writer goroutine for every failed
	// persistence job. It must not block.
	OnWriteError func(error)
}

// Bool returns a pointer to b, for use with the optional Options fields.
func Bool(b bool) *bool {
	return &b
}

func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = DefaultPath
	}
	if o.Pretty == nil {
		o.Pretty = Bool(true)
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	if o.WaitForWrite == nil {
		o.WaitForWrite = Bool(true)
	}
	return o
}
