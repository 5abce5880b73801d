package views

import (
	"strconv"

	"github.com/a-h/templ"
)

// AdminLogin renders the password form.
func AdminLogin(p Page, showError bool) templ.Component {
	p.Meta = Meta{Title: "Admin"}
	return Layout(p, component(func(b *writer) {
		b.open("section", "admin admin-login")
		b.raw(`<h1 class="page-title">Admin</h1>`)
		if showError {
			b.raw(`<p class="admin-error" role="alert">Wrong password.</p>`)
		}
		b.open("form", "admin-form", "method", "post", "action", "/admin/login/")
		csrfField(b, p.CSRF)
		b.raw(`<label for="password">Password</label>`)
		b.raw(`<input id="password" name="password" type="password" autocomplete="current-password" required autofocus>`)
		b.raw(`<button class="button" type="submit">Sign in</button>`)
		b.close("form")
		b.close("section")
	}))
}

// AdminDashboard lists every project with edit and delete actions.
func AdminDashboard(d AdminData) templ.Component {
	d.Page.Meta = Meta{Title: "Dashboard"}
	return Layout(d.Page, component(func(b *writer) {
		b.open("section", "admin admin-dashboard", "id", "admin", "hx-headers", jsonAttr(map[string]string{"X-CSRF-Token": d.CSRF}))
		b.raw(`<header class="admin-header"><h1 class="page-title">Projects</h1>`)
		b.raw(`<nav class="admin-nav"><a href="/admin/project/new/">New project</a> <a href="/admin/images/">Media</a> <a href="/admin/analytics/api/stats">Stats</a></nav>`)
		b.open("form", "admin-logout", "method", "post", "action", "/admin/logout/")
		csrfField(b, d.CSRF)
		b.raw(`<button type="submit">Sign out</button>`)
		b.close("form")
		b.raw("</header>")
		if d.Message != "" {
			b.open("p", "admin-message", "role", "status")
			b.text(d.Message)
			b.close("p")
		}
		b.raw(`<table class="admin-table"><thead><tr><th>Title</th><th>Year</th><th>Tags</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, pr := range d.Projects {
			b.raw("<tr>")
			b.raw("<td>")
			b.open("a", "", "href", "/admin/project/"+pr.Slug+"/")
			b.text(pr.Title)
			b.close("a")
			b.raw("</td><td>")
			if pr.Year > 0 {
				b.num(pr.Year)
			}
			b.raw("</td><td>")
			b.text(JoinTags(pr.Tags))
			b.raw("</td><td>")
			if pr.Published {
				b.raw("published")
			} else {
				b.raw("draft")
			}
			b.raw("</td><td>")
			b.open("button", "admin-delete", "type", "button",
				"hx-delete", "/admin/project/"+pr.Slug+"/", "hx-target", "#admin", "hx-swap", "outerHTML",
				"hx-confirm", "Delete "+pr.Title+"?")
			b.raw("Delete")
			b.close("button")
			b.raw("</td></tr>")
		}
		b.raw("</tbody></table>")
		b.close("section")
	}))
}

// AdminForm is the project editor.
func AdminForm(d AdminFormData) templ.Component {
	title := "Edit project"
	if d.IsNew {
		title = "New project"
	}
	d.Page.Meta = Meta{Title: title}
	return Layout(d.Page, component(func(b *writer) {
		pr := d.Project
		b.open("section", "admin admin-editor")
		b.open("h1", "page-title")
		b.text(title)
		b.close("h1")
		b.open("form", "admin-form", "method", "post", "action", "/admin/save/")
		csrfField(b, d.CSRF)
		if !d.IsNew {
			b.raw(`<input type="hidden" name="original_slug"`)
			b.attr("value", pr.Slug)
			b.raw(">")
		}
		field(b, "title", "Title", pr.Title, true)
		field(b, "slug", "Slug", pr.Slug, false)
		field(b, "summary", "Summary", pr.Summary, false)
		field(b, "role", "Role", pr.Role, false)
		year := ""
		if pr.Year > 0 {
			year = strconv.Itoa(pr.Year)
		}
		field(b, "year", "Year", year, false)
		field(b, "order", "Order", strconv.Itoa(pr.Order), false)
		field(b, "tags", "Tags (comma separated)", JoinTags(pr.Tags), true)
		field(b, "cover_src", "Cover image", pr.Cover.Src, false)
		field(b, "cover_dark", "Cover image (dark)", pr.Cover.Dark, false)
		field(b, "cover_alt", "Cover alt text", pr.Cover.Alt, false)
		textarea(b, "gallery", "Gallery (src | dark | alt | caption per line)", MediaList(pr.Gallery), 6)
		textarea(b, "links", "Links (label | url per line)", LinkList(pr.Links), 3)
		textarea(b, "body", "Body (markdown)", pr.Body, 18)
		checkbox(b, "featured", "Featured", pr.Featured)
		checkbox(b, "published", "Published", pr.Published || d.IsNew)
		b.raw(`<div class="admin-actions"><button class="button" type="submit">Save</button> <a href="/admin/">Cancel</a></div>`)
		b.close("form")
		b.close("section")
	}))
}

// AdminImages is the media library with the upload form.
func AdminImages(d AdminImagesData) templ.Component {
	d.Page.Meta = Meta{Title: "Media"}
	return Layout(d.Page, component(func(b *writer) {
		b.open("section", "admin admin-images", "id", "admin-images", "hx-headers", jsonAttr(map[string]string{"X-CSRF-Token": d.CSRF}))
		b.raw(`<header class="admin-header"><h1 class="page-title">Media</h1><nav class="admin-nav"><a href="/admin/">Projects</a></nav></header>`)
		b.open("form", "admin-upload", "method", "post", "action", "/admin/images/upload/", "enctype", "multipart/form-data")
		csrfField(b, d.CSRF)
		b.raw(`<label for="image">Image</label><input id="image" name="image" type="file" accept="image/jpeg,image/png,image/gif" required>`)
		b.raw(`<label for="variant">Theme variant</label><select id="variant" name="variant">`)
		b.raw(`<option value="">none</option><option value="light">light</option><option value="dark">dark</option></select>`)
		b.raw(`<button class="button" type="submit">Upload</button>`)
		b.close("form")
		if len(d.Images) == 0 {
			b.raw(`<p class="empty-state">No uploads yet.</p>`)
		}
		b.open("ul", "image-list")
		for _, img := range d.Images {
			src := "/public/uploads/" + img.Filename
			b.open("li", "image-item")
			b.open("img", "image-thumb", "src", src, "alt", img.OriginalName, "loading", "lazy")
			b.open("code", "")
			b.text(src)
			b.close("code")
			b.open("span", "image-meta")
			b.num(img.Width)
			b.raw("&times;")
			b.num(img.Height)
			b.raw(", ")
			b.num(img.Size / 1024)
			b.raw(" KB")
			b.close("span")
			b.open("button", "admin-delete", "type", "button",
				"hx-delete", "/admin/images/"+img.Filename+"/", "hx-target", "#admin-images", "hx-swap", "outerHTML",
				"hx-confirm", "Delete "+img.Filename+"?")
			b.raw("Delete")
			b.close("button")
			b.close("li")
		}
		b.close("ul")
		b.close("section")
	}))
}

func csrfField(b *writer, token string) {
	b.raw(`<input type="hidden" name="_csrf"`)
	b.attr("value", token)
	b.raw(">")
}

func field(b *writer, name, label, value string, required bool) {
	b.raw(`<label for="`, name, `">`)
	b.text(label)
	b.raw(`</label><input type="text"`)
	b.attr("id", name)
	b.attr("name", name)
	b.attr("value", value)
	if required {
		b.raw(" required")
	}
	b.raw(">")
}

func textarea(b *writer, name, label, value string, rows int) {
	b.raw(`<label for="`, name, `">`)
	b.text(label)
	b.raw(`</label><textarea`)
	b.attr("id", name)
	b.attr("name", name)
	b.attr("rows", strconv.Itoa(rows))
	b.raw(">")
	b.text(value)
	b.raw("</textarea>")
}

func checkbox(b *writer, name, label string, checked bool) {
	b.raw(`<label class="checkbox"><input type="checkbox" value="on"`)
	b.attr("name", name)
	if checked {
		b.raw(" checked")
	}
	b.raw("> ")
	b.text(label)
	b.raw("</label>")
}
