package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"

	"github.com/tstromberg/img2pdf/pkg/img2pdf"
)

// settle is how long the directory must stay quiet before a rebuild.
var settle = 500 * time.Millisecond

// watch rebuilds the document whenever an image in d changes, until ctx is done.
func watch(ctx context.Context, w io.Writer, d img2pdf.DirectoryPath, c *img2pdf.Config) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(string(d)); err != nil {
		return fmt.Errorf("watch %s: %w", d, err)
	}
	klog.Infof("watching %s ...", d)

	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			klog.V(1).Infof("event: %s", event)
			if !relevant(event) {
				continue
			}
			timer.Reset(settle)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		case <-timer.C:
			klog.Infof("%s changed, rebuilding", d)
			if err := convert(w, d, c); err != nil {
				return err
			}
		}
	}
}

// relevant reports whether event touches a file a directory conversion would pick up.
func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}

	return img2pdf.Matches(filepath.Base(event.Name))
}
