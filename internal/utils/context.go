package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/medrelay-dev/medrelay/internal/identity"
	"github.com/medrelay-dev/medrelay/internal/types"
)

func GetCurrentCaller(ctx *gin.Context) (identity.Caller, error) {
	value, exists := ctx.Get(types.ContextCallerKey)

	if !exists {
		return identity.Caller{}, fmt.Errorf("caller not authenticated")
	}

	caller, ok := value.(identity.Caller)

	if !ok {
		return identity.Caller{}, fmt.Errorf("invalid caller type in context")
	}

	return caller, nil
}
