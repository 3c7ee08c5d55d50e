package auth

import (
	"fmt"
	"go-blog-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each policy exists before adding it,
// making the operation idempotent and safe to run on every start.
//
// Route-level policies only gate who may reach a handler; ownership rules
// (a non-admin may only touch their own posts and comments) live in the
// service layer.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Policy objects are anchored regexes. The post detail path is a bare
	// numeric segment, so an unanchored pattern there would also cover
	// /admin, /giris and every other route; anchoring each object keeps
	// the matches exact.
	policies := [][]string{
		// Anonymous visitors can browse everything public and reach the
		// auth, contact and editor-upload endpoints.
		{"anonymous", "^/$", "GET"},
		{"anonymous", "^/[0-9]+$", "GET"},
		{"anonymous", "^/giris$", "GET"},
		{"anonymous", "^/giris$", "POST"},
		{"anonymous", "^/kayit$", "GET"},
		{"anonymous", "^/kayit$", "POST"},
		{"anonymous", "^/cikis$", "GET"},
		{"anonymous", "^/kategori/[^/]+$", "GET"},
		{"anonymous", "^/arama$", "GET"},
		{"anonymous", "^/yazarlar$", "GET"},
		{"anonymous", "^/yazar/[0-9]+$", "GET"},
		{"anonymous", "^/hakkimizda$", "GET"},
		{"anonymous", "^/iletisim$", "GET"},
		{"anonymous", "^/iletisim$", "POST"},
		{"anonymous", "^/upload$", "POST"},
		{"anonymous", "^/static/.+$", "GET"},
		{"anonymous", "^/uploads/.+$", "GET"},
		{"anonymous", "^/robots\\.txt$", "GET"},
		{"anonymous", "^/sitemap\\.xml$", "GET"},

		// Readers (any signed-in account) can comment and manage their
		// own comments and profile.
		{"reader", "^/yorum-ekle/[0-9]+$", "POST"},
		{"reader", "^/yorum-yanitla/[0-9]+/[0-9]+$", "POST"},
		{"reader", "^/yorum-sil/[0-9]+$", "POST"},
		{"reader", "^/yorum-duzenle/[0-9]+$", "GET"},
		{"reader", "^/yorum-duzenle/[0-9]+$", "POST"},
		{"reader", "^/profil-duzenle$", "GET"},
		{"reader", "^/profil-duzenle$", "POST"},

		// Authors can additionally submit and manage posts.
		{"author", "^/yeni$", "GET"},
		{"author", "^/yeni$", "POST"},
		{"author", "^/[0-9]+/duzenle$", "GET"},
		{"author", "^/[0-9]+/duzenle$", "POST"},
		{"author", "^/[0-9]+/sil$", "POST"},

		// Admins moderate.
		{"admin", "^/admin$", "GET"},
		{"admin", "^/admin/onayla/[0-9]+$", "POST"},
		{"admin", "^/admin/rutbe/[0-9]+/[a-z]+$", "POST"},
		{"admin", "^/admin/mesajlar$", "GET"},
		{"admin", "^/admin/mesaj-okundu/[0-9]+$", "POST"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Role inheritance chain: admin > author > reader > anonymous.
	inherits := [][2]string{
		{"reader", "anonymous"},
		{"author", "reader"},
		{"admin", "author"},
	}
	for _, g := range inherits {
		if has, _ := e.HasRoleForUser(g[0], g[1]); !has {
			if _, err := e.AddRoleForUser(g[0], g[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role '%s' -> '%s'", g[0], g[1]))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
