package auth

import (
	"github.com/gofiber/fiber/v2"

	"hoh_backend/internals/constants"
)

// RequireRoles membatasi akses ke role tertentu. Dipasang setelah
// AuthMiddleware (mengandalkan Locals("user_role")).
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role == "" {
			return fiber.NewError(fiber.StatusForbidden, "Role tidak ditemukan di token")
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak punya akses ke resource ini")
		}
		return c.Next()
	}
}

// RequireAdmin shortcut untuk endpoint khusus ADMIN
func RequireAdmin() fiber.Handler {
	return RequireRoles(constants.RoleAdmin)
}
