package watermark

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// settleDelay is how long a file must stay quiet after its last event
// before it is read, giving the writer time to finish.
var settleDelay = 500 * time.Millisecond

// Watch watermarks images as they are added to or rewritten in the input
// directory, until ctx is cancelled or the watcher is closed.
func (p *Processor) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(p.InDir); err != nil {
		return fmt.Errorf("watch %s: %w", p.InDir, err)
	}
	klog.Infof("watching %s for new images ...", p.InDir)

	// pending maps a path to the deadline after which it is processed;
	// further events on the same path push its deadline back.
	pending := map[string]time.Time{}
	timer := time.NewTimer(settleDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			name := filepath.Base(event.Name)
			if !IsSupported(name) || isOutputName(name) {
				continue
			}
			pending[event.Name] = time.Now().Add(settleDelay)
			timer.Reset(settleDelay)
		case <-timer.C:
			now := time.Now()
			for path, due := range pending {
				if now.Before(due) {
					continue
				}
				delete(pending, path)
				p.ProcessFile(path)
			}
			if len(pending) > 0 {
				timer.Reset(settleDelay)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Errorf("watch error: %v", err)
		}
	}
}

// isOutputName skips files this tool produced, for setups where the output
// directory nests inside the watched input directory.
func isOutputName(name string) bool {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.HasSuffix(stem, "_watermark")
}
