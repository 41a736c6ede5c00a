// Package counter 提供持久化的点击计数器和一次性庆祝标记
package counter

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
)

// Store 简单的字符串键值存储
type Store interface {
	// Get 返回键对应的值以及键是否存在
	Get(key string) (string, bool)
	// Set 写入键值
	Set(key, value string) error
	// Delete 删除键，键不存在时不报错
	Delete(key string) error
}

// 存储对象名，所有属性都挂在这个对象下
const storeObject = "oracle"

// GdataStore 基于 gdata 的跨平台存储
//
// gdataManager 为 nil 时进入降级模式：数据只保存在内存中，程序退出后丢失。
type GdataStore struct {
	gdataManager *gdata.Manager
	fallback     *MemoryStore
}

// NewGdataStore 创建 gdata 存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存存储）
func NewGdataStore(gdataManager *gdata.Manager) *GdataStore {
	if gdataManager == nil {
		log.Printf("[Counter] Warning: gdata Manager not available, counter will not persist")
	}
	return &GdataStore{
		gdataManager: gdataManager,
		fallback:     NewMemoryStore(),
	}
}

// Get 读取属性，读取失败视为不存在
func (s *GdataStore) Get(key string) (string, bool) {
	if s.gdataManager == nil {
		return s.fallback.Get(key)
	}

	if !s.gdataManager.ObjectPropExists(storeObject, key) {
		return "", false
	}

	data, err := s.gdataManager.LoadObjectProp(storeObject, key)
	if err != nil {
		log.Printf("[Counter] Warning: Failed to load %s: %v", key, err)
		return "", false
	}
	return string(data), true
}

// Set 写入属性
func (s *GdataStore) Set(key, value string) error {
	if s.gdataManager == nil {
		return s.fallback.Set(key, value)
	}

	if err := s.gdataManager.SaveObjectProp(storeObject, key, []byte(value)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete 删除属性
func (s *GdataStore) Delete(key string) error {
	if s.gdataManager == nil {
		return s.fallback.Delete(key)
	}

	if !s.gdataManager.ObjectPropExists(storeObject, key) {
		return nil
	}
	if err := s.gdataManager.DeleteObjectProp(storeObject, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// MemoryStore 内存存储，用于测试和降级模式
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore 创建空的内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get 读取键值
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set 写入键值
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete 删除键值
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
