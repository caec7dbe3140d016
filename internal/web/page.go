package web

import (
	"html/template"
	"net/http"

	"github.com/nikolayk812/storefront-cart/internal/notify"
	"github.com/nikolayk812/storefront-cart/internal/view"
	"go.uber.org/zap"
)

type toastModel struct {
	Destructive bool
	Description string
	ActionLabel string
	ActionHref  string
}

type pageModel struct {
	Title     string
	CartRoute string
	ShopRoute string
	ItemCount int
	Toasts    []toastModel
	Content   template.HTML
}

func toToastModels(toasts []notify.Toast) []toastModel {
	models := make([]toastModel, 0, len(toasts))
	for _, t := range toasts {
		m := toastModel{
			Destructive: t.Variant == notify.VariantDestructive,
			Description: t.Description,
		}
		if action, ok := t.Action.Get(); ok {
			m.ActionLabel = action.Label
			m.ActionHref = action.Href
		}
		models = append(models, m)
	}
	return models
}

// page wraps content, already rendered by html/template, in the layout and
// delivers the shopper's queued toasts.
func (s *Server) page(w http.ResponseWriter, sess *session, title string, content []byte) {
	model := pageModel{
		Title:     title,
		CartRoute: view.RouteCart,
		ShopRoute: view.RouteShop,
		Toasts:    toToastModels(s.toasts.Drain(sess.ownerID)),
		Content:   template.HTML(content),
	}
	if cart, ok := sess.cart.Cart().Get(); ok {
		model.ItemCount = cart.ItemCount()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Execute(w, model); err != nil {
		s.logger.Warn("render page", zap.String("title", title), zap.Error(err))
	}
}
