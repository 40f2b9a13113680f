package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nouhaa3/invisithreat/internal/app/domain/pages"
	"github.com/nouhaa3/invisithreat/internal/app/middleware"
	"github.com/nouhaa3/invisithreat/internal/app/models"
)

type DashboardHandlers struct {
	logger *zap.Logger
}

func NewDashboardHandlers(logger *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{logger: logger}
}

// ShowDashboard renders the authenticated landing page. The route guard
// guarantees a user is present by the time this runs.
func (h *DashboardHandlers) ShowDashboard(c *gin.Context) {
	user := middleware.GetUserFromContext(c)
	h.logger.Info("dashboard accessed", zap.String("email", userEmail(user)))

	c.HTML(http.StatusOK, "", pages.LayoutPage(models.LayoutTempl{
		Title:     "Dashboard",
		Content:   DashboardPage(user),
		Nav:       models.MainNav,
		ActiveNav: "Dashboard",
		User:      user,
	}))
}

func userEmail(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.Email
}
