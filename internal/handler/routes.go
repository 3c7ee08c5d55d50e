package handler

import (
	"io/fs"
	"net/http"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/session"
	"go-blog-app/web"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router covering the whole
// HTTP surface. Every route passes through the session and authorization
// middleware; page handlers are additionally wrapped by the error
// middleware so they can return AppErrors.
func NewRouter(
	posts *PostHandler,
	comments *CommentHandler,
	auth *AuthHandler,
	admin *AdminHandler,
	uploads *UploadHandler,
	seo *SeoHandler,
	authz func(http.Handler) http.Handler,
	errorMw func(middleware.AppHandler) http.Handler,
	sessions session.Manager,
	uploadsDir string,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(sessions.LoadAndSave)
	r.Use(authz)

	// Public pages
	r.Method(http.MethodGet, "/", errorMw(posts.homeHandler))
	r.Method(http.MethodGet, "/{postID:[0-9]+}", errorMw(posts.detailHandler))
	r.Method(http.MethodGet, "/kategori/{name}", errorMw(posts.categoryHandler))
	r.Method(http.MethodGet, "/arama", errorMw(posts.searchHandler))
	r.Method(http.MethodGet, "/yazarlar", errorMw(auth.writersHandler))
	r.Method(http.MethodGet, "/yazar/{id:[0-9]+}", errorMw(auth.writerDetailHandler))
	r.Method(http.MethodGet, "/hakkimizda", errorMw(posts.aboutHandler))
	r.Method(http.MethodGet, "/iletisim", errorMw(admin.contactFormHandler))
	r.Method(http.MethodPost, "/iletisim", errorMw(admin.contactHandler))

	// Authentication
	r.Method(http.MethodGet, "/giris", errorMw(auth.loginFormHandler))
	r.Method(http.MethodPost, "/giris", errorMw(auth.loginHandler))
	r.Method(http.MethodGet, "/kayit", errorMw(auth.registerFormHandler))
	r.Method(http.MethodPost, "/kayit", errorMw(auth.registerHandler))
	r.Method(http.MethodGet, "/cikis", errorMw(auth.logoutHandler))
	r.Method(http.MethodGet, "/profil-duzenle", errorMw(auth.profileFormHandler))
	r.Method(http.MethodPost, "/profil-duzenle", errorMw(auth.profileHandler))

	// Content management
	r.Method(http.MethodGet, "/yeni", errorMw(posts.newHandler))
	r.Method(http.MethodPost, "/yeni", errorMw(posts.createHandler))
	r.Method(http.MethodGet, "/{postID:[0-9]+}/duzenle", errorMw(posts.editHandler))
	r.Method(http.MethodPost, "/{postID:[0-9]+}/duzenle", errorMw(posts.updateHandler))
	r.Method(http.MethodPost, "/{postID:[0-9]+}/sil", errorMw(posts.deleteHandler))

	// Comments
	r.Method(http.MethodPost, "/yorum-ekle/{postID:[0-9]+}", errorMw(comments.addHandler))
	r.Method(http.MethodPost, "/yorum-yanitla/{postID:[0-9]+}/{parentID:[0-9]+}", errorMw(comments.replyHandler))
	r.Method(http.MethodGet, "/yorum-duzenle/{commentID:[0-9]+}", errorMw(comments.editFormHandler))
	r.Method(http.MethodPost, "/yorum-duzenle/{commentID:[0-9]+}", errorMw(comments.editHandler))
	r.Method(http.MethodPost, "/yorum-sil/{commentID:[0-9]+}", errorMw(comments.deleteHandler))

	// Moderation
	r.Method(http.MethodGet, "/admin", errorMw(admin.dashboardHandler))
	r.Method(http.MethodPost, "/admin/onayla/{postID:[0-9]+}", errorMw(admin.approveHandler))
	r.Method(http.MethodPost, "/admin/rutbe/{userID:[0-9]+}/{role}", errorMw(admin.roleHandler))
	r.Method(http.MethodGet, "/admin/mesajlar", errorMw(admin.messagesHandler))
	r.Method(http.MethodPost, "/admin/mesaj-okundu/{id:[0-9]+}", errorMw(admin.markReadHandler))

	// Editor uploads and SEO endpoints
	r.Post("/upload", uploads.uploadHandler)
	r.Get("/robots.txt", seo.robotsHandler)
	r.Get("/sitemap.xml", seo.sitemapHandler)

	// Embedded static assets and the uploads directory
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	return r
}
