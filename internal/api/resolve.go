package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tcfw/didres/pkg/resolver"
)

func init() {
	reg = append(reg, &resolveApi{})
}

type resolveApi struct {
	BaseHandler
}

func (ra *resolveApi) Setup(a *Api, r *gin.RouterGroup) error {
	ra.a = a

	r.GET("/did-doc", ra.didDoc)
	r.GET("/vc-meta", ra.vcMeta)

	return nil
}

func (ra *resolveApi) didDoc(c *gin.Context) {
	did := c.Query("did")
	if did == "" {
		respondError(c, resolver.ErrDidDocumentRetrieval)
		return
	}

	ctx, cancel := ra.a.requestContext(c)
	defer cancel()

	doc, err := ra.a.r.ResolveDidDocument(ctx, did)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (ra *resolveApi) vcMeta(c *gin.Context) {
	id := c.Query("vcId")
	if id == "" {
		respondError(c, resolver.ErrVcMetaRetrieval)
		return
	}

	ctx, cancel := ra.a.requestContext(c)
	defer cancel()

	meta, err := ra.a.r.ResolveVcMeta(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}
