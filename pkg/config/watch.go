package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce 编辑器保存时往往连续触发多次写事件，合并为一次重新加载
const reloadDebounce = 100 * time.Millisecond

// TuningWatcher 监听调参文件变化并重新加载
//
// 监听的是文件所在目录（很多编辑器通过重命名替换文件），只处理目标文件的事件。
// 加载成功的配置从 Updates 发出；解析或校验失败从 Errors 发出，旧配置保持不变。
type TuningWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Updates chan *TuningConfig
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewTuningWatcher 创建调参文件监听器
func NewTuningWatcher(path string) (*TuningWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	tw := &TuningWatcher{
		watcher: w,
		path:    abs,
		Updates: make(chan *TuningConfig, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go tw.run()

	log.Printf("[TuningWatcher] Watching %s", abs)
	return tw, nil
}

// Close 停止监听并关闭 Updates/Errors
func (w *TuningWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *TuningWatcher) run() {
	defer close(w.done)
	defer close(w.Updates)
	defer close(w.Errors)

	// 尾沿去抖：最后一次事件之后静默 reloadDebounce 才重新加载，避免读到写了一半的文件
	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			debounce.Reset(reloadDebounce)
		case <-debounce.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *TuningWatcher) reload() {
	cfg, err := LoadTuning(w.path)
	if err != nil {
		log.Printf("[TuningWatcher] Reload failed, keeping previous tuning: %v", err)
		w.sendError(err)
		return
	}

	// 只保留最新的一份，未被消费的旧配置直接丢弃
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
		log.Printf("[TuningWatcher] Reloaded %s", w.path)
	case <-w.closeCh:
	}
}

func (w *TuningWatcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
