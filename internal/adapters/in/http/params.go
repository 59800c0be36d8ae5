package http

import (
	"strings"
	"time"

	"printflow/internal/core/application/usecases/queries"
	"printflow/internal/core/domain/model/kernel"
	"printflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathID binds a UUID path parameter.
func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return toKernel(name, id)
}

func includeInactive(c echo.Context) (queries.CatalogFilter, error) {
	var include *bool
	err := runtime.BindQueryParameter("form", true, false, "includeInactive", c.QueryParams(), &include)
	if err != nil {
		return queries.CatalogFilter{}, errs.NewValueIsInvalidErrorWithCause("includeInactive", err)
	}
	return queries.CatalogFilter{IncludeInactive: include != nil && *include}, nil
}

func toKernel(name string, id openapi_types.UUID) (kernel.UUID, error) {
	k, err := kernel.FromGoogle(id)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return k, nil
}

func toKernelList(name string, ids []openapi_types.UUID) ([]kernel.UUID, error) {
	result := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		k, err := toKernel(name, id)
		if err != nil {
			return nil, err
		}
		result = append(result, k)
	}
	return result, nil
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func fromDate(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func trimmed(p *string) string {
	return strings.TrimSpace(deref(p))
}
