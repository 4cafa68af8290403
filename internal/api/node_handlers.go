package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"menedzer-plikow/internal/tree"
)

type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

type UpdateNodeRequest struct {
	Name       *string `json:"name"`
	ParentID   *int64  `json:"parent_id"`
	MoveToRoot bool    `json:"move_to_root"`
}

type PathResponse struct {
	Path string `json:"path" example:"uploads/Dokumenty/Raport.docx"`
}

// multipartMemory is how much of an upload ParseMultipartForm keeps in memory.
const multipartMemory = 32 << 20

// @Summary      List nodes
// @Description  Lists the children of parent_id (root when omitted) or one of the views: home, recent, starred, shared, trash, storage. A search term overrides the view.
// @Tags         nodes
// @Produce      json
// @Param        parent_id  query     string  false  "Parent folder ID"
// @Param        view       query     string  false  "View name"
// @Param        search     query     string  false  "Case-insensitive name filter"
// @Param        starred    query     bool    false  "Only starred nodes"
// @Param        limit      query     int     false  "Page size"
// @Param        offset     query     int     false  "Page offset"
// @Success      200        {array}   NodeResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      404        {object}  ErrorResponse
// @Router       /nodes [get]
func (s *Server) ListNodesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	parentID, ok := parseParentID(q.Get("parent_id"))
	if !ok {
		writeBadRequest(w, "Invalid parent_id")
		return
	}
	starred := false
	if raw := q.Get("starred"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeBadRequest(w, "Invalid starred flag")
			return
		}
		starred = v
	}

	nodes, err := s.engine.List(r.Context(), tree.Filter{
		View:     q.Get("view"),
		ParentID: parentID,
		Search:   q.Get("search"),
		Starred:  starred,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	limit, offset := parsePagination(r)
	writeJSON(w, http.StatusOK, toNodeResponses(paginate(nodes, limit, offset)))
}

// @Summary      Get a node
// @Tags         nodes
// @Produce      json
// @Param        nodeId  path      int  true  "Node ID"
// @Success      200     {object}  NodeResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId} [get]
func (s *Server) GetNodeHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}
	node, err := s.engine.Get(r.Context(), nodeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNodeResponse(node))
}

// @Summary      Create a folder
// @Tags         nodes
// @Accept       json
// @Produce      json
// @Param        folder  body      CreateFolderRequest  true  "Folder name and optional parent"
// @Success      201     {object}  NodeResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Router       /nodes/folder [post]
func (s *Server) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}

	node, err := s.engine.CreateFolder(r.Context(), req.Name, req.ParentID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNodeResponse(node))
}

// @Summary      Upload a file
// @Description  Stores the file under parent_id. When the name is taken the stored name gets a " (n)" suffix.
// @Tags         nodes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "File to upload"
// @Param        parent_id  formData  string  false  "Parent folder ID"
// @Success      201        {object}  NodeResponse
// @Failure      400        {object}  ErrorResponse
// @Failure      413        {object}  ErrorResponse
// @Router       /nodes/file [post]
func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	if limit := s.config.Storage.MaxUploadBytes; limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartMemory)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
				Error:   string(tree.KindInvalidArgument),
				Message: "Upload exceeds the size limit",
			})
			return
		}
		writeBadRequest(w, "Error parsing multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, handler, err := r.FormFile("file")
	if err != nil {
		writeBadRequest(w, "Error retrieving the file")
		return
	}
	defer file.Close()

	parentID, ok := parseParentID(r.FormValue("parent_id"))
	if !ok {
		writeBadRequest(w, "Invalid parent_id")
		return
	}

	node, err := s.engine.UploadFile(r.Context(), handler.Filename, parentID, file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNodeResponse(node))
}

// @Summary      Download a file
// @Tags         nodes
// @Produce      octet-stream
// @Param        nodeId  path      int  true  "Node ID"
// @Success      200     {file}    file
// @Failure      404     {object}  ErrorResponse
// @Failure      422     {object}  ErrorResponse
// @Router       /nodes/{nodeId}/download [get]
func (s *Server) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}

	node, fileStream, err := s.engine.Open(r.Context(), nodeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer fileStream.Close()

	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": node.Name}))
	if node.MimeType != "" {
		w.Header().Set("Content-Type", node.MimeType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", node.Size))

	if _, err := io.Copy(w, fileStream); err != nil {
		s.log.Warn("download interrupted", "id", node.ID, "error", err)
	}
}

// @Summary      Rename or move a node
// @Description  Renames the node when name is set and moves it when parent_id or move_to_root is set. Both changes apply together or not at all. Returns the final path.
// @Tags         nodes
// @Accept       json
// @Produce      json
// @Param        nodeId  path      int                true  "Node ID"
// @Param        update  body      UpdateNodeRequest  true  "Changes"
// @Success      200     {object}  PathResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Failure      409     {object}  ErrorResponse
// @Failure      422     {object}  ErrorResponse
// @Router       /nodes/{nodeId} [patch]
func (s *Server) UpdateNodeHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}

	var req UpdateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	if req.Name == nil && req.ParentID == nil && !req.MoveToRoot {
		writeBadRequest(w, "No update operation specified (provide 'name', 'parent_id' or 'move_to_root')")
		return
	}
	if req.ParentID != nil && req.MoveToRoot {
		writeBadRequest(w, "'parent_id' and 'move_to_root' are mutually exclusive")
		return
	}

	moving := req.ParentID != nil || req.MoveToRoot
	var path string
	var err error
	switch {
	case req.Name != nil && moving:
		path, err = s.engine.RenameAndMove(r.Context(), nodeID, *req.Name, req.ParentID)
	case req.Name != nil:
		path, err = s.engine.Rename(r.Context(), nodeID, *req.Name)
	default:
		path, err = s.engine.Move(r.Context(), nodeID, req.ParentID)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PathResponse{Path: path})
}

// @Summary      Copy a node
// @Description  Copies a file or a folder with its contents next to the original as "Copy of ...".
// @Tags         nodes
// @Produce      json
// @Param        nodeId  path      int  true  "Node ID"
// @Success      201     {object}  NodeResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId}/copy [post]
func (s *Server) CopyNodeHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}
	node, err := s.engine.Copy(r.Context(), nodeID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNodeResponse(node))
}

// @Summary      Move a node to the trash
// @Tags         nodes
// @Param        nodeId  path      int  true  "Node ID"
// @Success      204     {null}    nil  "No Content"
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId} [delete]
func (s *Server) DeleteNodeHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}
	if err := s.engine.SoftDelete(r.Context(), nodeID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Delete a node permanently
// @Description  Removes the node, its subtree and their bytes. This action cannot be undone.
// @Tags         nodes
// @Param        nodeId  path      int  true  "Node ID"
// @Success      204     {null}    nil  "No Content"
// @Failure      404     {object}  ErrorResponse
// @Router       /nodes/{nodeId}/permanent [delete]
func (s *Server) PermanentDeleteHandler(w http.ResponseWriter, r *http.Request) {
	nodeID, ok := nodeIDParam(r)
	if !ok {
		writeBadRequest(w, "Invalid node ID")
		return
	}
	if err := s.engine.PermanentDelete(r.Context(), nodeID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
