// Package docs holds the Swagger 2.0 document for the API and registers it
// with swag so http-swagger can serve it at /swagger/doc.json. Keep it in step
// with the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/blogs": {
            "get": {
                "description": "Returns every blog with its creator expanded under \"user\".",
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "List blogs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.Blog"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates a blog owned by the authenticated user.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Create a blog",
                "parameters": [
                    {"description": "Blog to create", "name": "blog", "in": "body", "required": true, "schema": {"$ref": "#/definitions/blogs.CreateBlogRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Blog"}},
                    "400": {"description": "Bad Request - Missing title or url", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Unauthorized - Token missing or invalid", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/blogs/stats": {
            "get": {
                "description": "Total likes, favourite blog and the most prolific and most liked authors.",
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Blog statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/stats.Summary"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/blogs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Get a blog",
                "parameters": [{"type": "string", "description": "Blog ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Blog"}},
                    "400": {"description": "Malformatted id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "description": "Partially updates a blog. Omitted fields keep their values.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["blogs"],
                "summary": "Update a blog",
                "parameters": [
                    {"type": "string", "description": "Blog ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "blog", "in": "body", "required": true, "schema": {"$ref": "#/definitions/blogs.UpdateBlogRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Blog"}},
                    "400": {"description": "Bad Request - Malformatted id or invalid fields", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "Not Found"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Deletes a blog. Only the user who created it may delete it.",
                "tags": ["blogs"],
                "summary": "Delete a blog",
                "parameters": [{"type": "string", "description": "Blog ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Malformatted id", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Unauthorized - Token missing or invalid", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "403": {"description": "Forbidden - Not the creator", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports whether the database answers.",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "description": "Checks a username and password and returns a session token.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "User login credentials", "name": "loginBody", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "400": {"description": "Bad Request - Invalid input or missing fields", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "401": {"description": "Unauthorized - Invalid credentials", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        },
        "/testing/reset": {
            "post": {
                "description": "Deletes every blog and user. Only mounted when APP_ENV=test.",
                "tags": ["testing"],
                "summary": "Reset the database",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/users": {
            "get": {
                "description": "Returns every user together with the blogs they created.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "All users", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Registers a new account. The password hash is never returned.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create a user",
                "parameters": [
                    {"description": "Account details", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/users.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "User created", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request - Short password, invalid or duplicate username", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apperror.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "apperror.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "A description of the error"}
            }
        },
        "auth.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string", "example": "salainen"},
                "username": {"type": "string", "example": "mluukkai"}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "3f1c2a9e-6b7d-4e0a-9c1e-2b8f5d4a7c10"},
                "name": {"type": "string", "example": "Matti Luukkainen"},
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."},
                "username": {"type": "string", "example": "mluukkai"}
            }
        },
        "blogs.CreateBlogRequest": {
            "type": "object",
            "properties": {
                "author": {"type": "string", "example": "Michael Chan"},
                "likes": {"type": "integer", "example": 7},
                "title": {"type": "string", "example": "React patterns"},
                "url": {"type": "string", "example": "https://reactpatterns.com/"}
            }
        },
        "blogs.UpdateBlogRequest": {
            "type": "object",
            "properties": {
                "author": {"type": "string", "example": "Michael Chan"},
                "likes": {"type": "integer", "example": 8},
                "title": {"type": "string", "example": "React patterns"},
                "url": {"type": "string", "example": "https://reactpatterns.com/"}
            }
        },
        "model.Blog": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "id": {"type": "string"},
                "likes": {"type": "integer"},
                "title": {"type": "string"},
                "url": {"type": "string"},
                "user": {"$ref": "#/definitions/model.UserSummary"}
            }
        },
        "model.BlogSummary": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "id": {"type": "string"},
                "likes": {"type": "integer"},
                "title": {"type": "string"},
                "url": {"type": "string"}
            }
        },
        "model.User": {
            "type": "object",
            "properties": {
                "blogs": {"type": "array", "items": {"$ref": "#/definitions/model.BlogSummary"}},
                "id": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "model.UserSummary": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "stats.AuthorBlogs": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "blogs": {"type": "integer"}
            }
        },
        "stats.AuthorLikes": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "likes": {"type": "integer"}
            }
        },
        "stats.Favourite": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "likes": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "stats.Summary": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "favouriteBlog": {"$ref": "#/definitions/stats.Favourite"},
                "mostBlogs": {"$ref": "#/definitions/stats.AuthorBlogs"},
                "mostLikes": {"$ref": "#/definitions/stats.AuthorLikes"},
                "totalLikes": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type 'Bearer YOUR_JWT_TOKEN' to authorize",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Bloglist API",
	Description:      "Blog list with user accounts and bearer-token authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
