package components

import (
	"context"

	"github.com/zielvna/serwer/render"
)

var _ render.ComponentUser = Sides{}

// Sides is the list of code samples on the home page.
type Sides struct {
	Items []Side
}

// NewSides returns the three samples the home page shows.
func NewSides() Sides {
	return Sides{
		Items: []Side{
			{
				Title:         "Hello world",
				Description:   "This is the simplest server application. The routing system will attempt to match the requested URL, execute the corresponding code, and send a response to the user.",
				IsLeftToRight: true,
				Language:      "rust",
				Code: `let mut serwer = Serwer::new();

serwer.get("/", route! {() move |_, mut res| {
    res.set(StatusCode::OK, "Hello world".to_string());
    res
}});

serwer.listen(7878);`,
			},
			{
				Title:         "Dynamic params",
				Description:   "Improve your routes with dynamic parameters for a more user-friendly experience. This allows for personalized and intuitive navigation experiences for your users.",
				IsLeftToRight: false,
				Language:      "rust",
				Code: `serwer.get("/user/<user>", route! {() move |req, mut res| {
    let user = req.param("user").unwrap_or("".to_string());
    res.set(StatusCode::OK, format!("Hello {user}"));
    res
}});`,
			},
			{
				Title:         "Shared data",
				Description:   "Sharing data through your app has never been easier. Declare it once and use it across all your routes.",
				IsLeftToRight: true,
				Language:      "rust",
				Code: `let counter = Data::new(0);

serwer.post("/click", route! {(counter) move |_, mut res| {
    let mut counter = counter.write();
    *counter += 1;
    res.set(StatusCode::OK, "Counter increased".to_string());
    res
}});

serwer.get("/counter", route! {(counter) move |_, mut res| {
    let counter = counter.read();
    res.set(StatusCode::OK, counter.to_string());
    res
}});`,
			},
		},
	}
}

func (Sides) Templates(_ context.Context) []string {
	return []string{"sides.html.tmpl"}
}

func (s Sides) UseComponents(_ context.Context) []render.Component {
	components := make([]render.Component, 0, len(s.Items))
	for _, item := range s.Items {
		components = append(components, item)
	}
	return components
}
