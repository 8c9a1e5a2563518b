package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"marketplace-api/internal/domain"
	productsvc "marketplace-api/internal/service/product"
)

// productPatch is the PATCH payload. A present state field routes the
// request through the moderation engine; otherwise it is a field update.
type productPatch struct {
	State *string `json:"state"`
	productsvc.UpdateInput
}

func listProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context(), currentActor(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func myProductsHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := currentActor(c)
		products, err := svc.Mine(c.Request.Context(), actor.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"), currentActor(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func createProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		actor := currentActor(c)
		p, err := svc.Create(c.Request.Context(), actor.ID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch productPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		actor := currentActor(c)

		if patch.State != nil {
			result, err := svc.ChangeState(c.Request.Context(), c.Param("id"), *patch.State, *actor)
			if err != nil {
				writeError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":   "state updated",
				"state":    result.State,
				"notified": result.Notified,
			})
			return
		}

		p, err := svc.Update(c.Request.Context(), c.Param("id"), *actor, patch.UpdateInput)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(svc ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := currentActor(c)
		if err := svc.Delete(c.Request.Context(), c.Param("id"), *actor); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
