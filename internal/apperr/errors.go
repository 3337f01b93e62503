// Package apperr 定义业务层统一的错误分类。
//
// 服务层与查询层的所有失败都归入以下四类之一（或保持未分类），
// HTTP 层据此映射状态码：NotFound→404、Conflict→409、
// InvalidArgument→400、StoreUnavailable→503、其他→500。
package apperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource already exists")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// NotFound 构造 NotFound 类错误
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflict 构造 Conflict 类错误
func Conflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Invalid 构造 InvalidArgument 类错误
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Store 对存储层返回的错误进行分类，nil 原样返回。
// 无法识别的错误只做包装，交给上层按 500 处理。
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	switch kind := classify(err); kind {
	case nil:
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, kind, err)
	}
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrStoreUnavailable):
		// 已分类
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// 引用的记录不存在（例如收藏时视频刚被删除）
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case unavailable(err):
		return ErrStoreUnavailable
	}

	// 未开启 TranslateError 的驱动只能看消息
	msg := err.Error()
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrNotFound
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrConflict
	}
	return nil
}

func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx: connection exception; 57P0x: 管理员关闭 / 崩溃恢复中
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P0")
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsRetryable 判断错误是否可以由调用方稍后重试
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
