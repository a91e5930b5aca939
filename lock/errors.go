package lock

import "github.com/ceyewan/rplock/xerrors"

var (
	// ErrStoreNil 构造时存储引用缺失，构造失败
	ErrStoreNil = xerrors.New("lock: store is nil")

	// ErrConnectorNil 连接器为空
	ErrConnectorNil = xerrors.New("lock: connector is nil")

	// ErrInvalidOption 选项取值未通过验证，错误信息中包含具体字段
	ErrInvalidOption = xerrors.New("lock: invalid option")

	// ErrLockNameEmpty 锁名为空
	ErrLockNameEmpty = xerrors.New("lock: lock name must be a non-empty string")

	// ErrStore 存储操作失败的分类错误，错误链中保留底层错误
	ErrStore = xerrors.New("lock: store operation failed")
)

// invalidOption 构造带字段名的选项验证错误
func invalidOption(field, reason string) error {
	return xerrors.Wrapf(ErrInvalidOption, "%s %s", field, reason)
}

// storeError 将底层存储错误归类为 ErrStore，同时保留原错误链
func storeError(op string, err error) error {
	return xerrors.Wrapf(xerrors.Join(ErrStore, err), "%s", op)
}
