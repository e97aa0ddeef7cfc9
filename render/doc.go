// Package render provides the HTML rendering layer the documentation site is
// built with. It sits on top of the html/template package.
//
// render is organized around Components and Pages. A Component is some piece
// of the HTML document that you want included in the page's output: the hero
// banner, a feature card, the navbar. A Page is a Component that gets rendered
// itself rather than being included in another Component; the home page and
// every documentation page are Pages, and so is the 404 page.
//
// Each build has a single Site. The Site provides the fs.FS holding the
// templates Components use, and is available at render time as .Site, so it
// carries the site configuration every page reads (title, tagline, navbar,
// footer).
//
// To render a page, pass it to Render. The page itself is available as .Page
// within the template and the Site as .Site. The CSS and JavaScript resources
// the page and its Components declare are collected, de-duplicated, ordered,
// and made available as .CSS, .HeaderJS, and .FooterJS.
//
// Components tend to be structs with properties for whatever data their
// templates need. When a Component relies on another Component (the home page
// relies on the hero, the hero on nothing) the dependency should be a property
// of the parent and returned from its UseComponents method, so the child's
// templates, resources, and template functions are all included whenever the
// parent is rendered.
package render
