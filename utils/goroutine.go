package utils

import "log"

// SafeGo 启动后台 goroutine，panic 时记录名称而不是让进程退出
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[%s] panic recovered: %v", name, err)
			}
		}()
		fn()
	}()
}
