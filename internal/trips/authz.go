package trips

import (
	"errors"
	"time"

	"github.com/anoixa/tripill/database/models"
	tripsrepo "github.com/anoixa/tripill/database/repo/trips"
	"github.com/anoixa/tripill/internal/apperr"
	"gorm.io/gorm"
)

// CanMutateTrip 唯一的行程修改授权判断：只有拥有者可以修改行程及其地点
func CanMutateTrip(userID uint, trip *models.Trip) bool {
	return trip != nil && userID != 0 && trip.OwnerID == userID
}

// MutationGuard 返回在行程行锁内执行的授权校验
func MutationGuard(userID uint) tripsrepo.Guard {
	return func(trip *models.Trip) error {
		if !CanMutateTrip(userID, trip) {
			return apperr.Forbidden("you do not own trip %d", trip.ID)
		}
		return nil
	}
}

// ValidateWindow 校验时间窗口，结束时间不能早于开始时间
func ValidateWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperr.Invalid("end date must not be before start date")
	}
	return nil
}

// translate 将仓库错误转换为业务错误，已是业务错误的原样返回
func translate(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(format+" not found", args...)
	}
	return apperr.Internal(err, format, args...)
}
