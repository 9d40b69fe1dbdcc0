package jobs

import (
	"fmt"
	"sync"

	"github.com/iceymoss/echo-news/internal/core"
)

var (
	registry = make(map[string]core.JobCreator)
	mu       sync.RWMutex
)

// Register 注册任务构造函数，供配置按名称调度
func Register(name string, creator core.JobCreator) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = creator
}

// GetJob 按名称实例化任务
func GetJob(name string) (core.Job, error) {
	mu.RLock()
	creator, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("job not registered: %s", name)
	}
	return creator(), nil
}
