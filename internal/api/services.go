package api

// Service accessors group Client methods by resource. Each service embeds
// *Client so the shared dispatcher backs every call site.

type ImagesService struct{ *Client }

type OembedService struct{ *Client }

type UsersService struct{ *Client }

func (c *Client) Images() ImagesService {
	return ImagesService{c}
}

func (c *Client) Oembed() OembedService {
	return OembedService{c}
}

func (c *Client) Users() UsersService {
	return UsersService{c}
}
