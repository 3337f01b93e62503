package dto

import (
	"fmt"
	"regexp"

	"edufleex-go/internal/catalog"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 第三方平台的视频 ID：字母、数字、- 和 _
var videoRefPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidVideoRef 校验外部视频 ID 格式
func ValidVideoRef(ref string) bool {
	return videoRefPattern.MatchString(ref)
}

// RegisterValidators 向 gin 的校验器注册自定义规则
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine")
	}
	if err := v.RegisterValidation("videoref", func(fl validator.FieldLevel) bool {
		return ValidVideoRef(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, ok := catalog.ParseDuration(fl.Field().String())
		return ok
	})
}
