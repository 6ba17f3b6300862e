package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)

	api := r.Group("/api")
	api.Use(jwtAuthMiddleware())
	api.GET("/me", meHandler)

	api.GET("/reference", referenceIndexHandler)

	api.GET("/statuses", listStatusesHandler)
	api.POST("/statuses", createStatusHandler)
	api.GET("/statuses/:id", getStatusHandler)
	api.PUT("/statuses/:id", updateStatusHandler)
	api.DELETE("/statuses/:id", deleteStatusHandler)

	api.GET("/operation-types", listOperationTypesHandler)
	api.POST("/operation-types", createOperationTypeHandler)
	api.GET("/operation-types/:id", getOperationTypeHandler)
	api.PUT("/operation-types/:id", updateOperationTypeHandler)
	api.DELETE("/operation-types/:id", deleteOperationTypeHandler)
	api.GET("/operation-types/:id/categories", listCategoriesForOperationTypeHandler)

	api.GET("/categories", listCategoriesHandler)
	api.POST("/categories", createCategoryHandler)
	api.GET("/categories/:id", getCategoryHandler)
	api.PUT("/categories/:id", updateCategoryHandler)
	api.DELETE("/categories/:id", deleteCategoryHandler)
	api.GET("/categories/:id/subcategories", listSubCategoriesForCategoryHandler)

	api.GET("/subcategories", listSubCategoriesHandler)
	api.POST("/subcategories", createSubCategoryHandler)
	api.GET("/subcategories/:id", getSubCategoryHandler)
	api.PUT("/subcategories/:id", updateSubCategoryHandler)
	api.DELETE("/subcategories/:id", deleteSubCategoryHandler)

	api.GET("/transactions", listTransactionsHandler)
	api.POST("/transactions", createTransactionHandler)
	api.GET("/transactions/:id", getTransactionHandler)
	api.PUT("/transactions/:id", updateTransactionHandler)
	api.DELETE("/transactions/:id", deleteTransactionHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		c.Set("username", username)
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": usernameVal.(string)})
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := Register(req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString})
}
