package applications

const formHTML = `<!doctype html>
<title>Merge Cover + Resume</title>
<meta name=viewport content="width=device-width,initial-scale=1">
<div style="max-width:600px;margin:40px auto;font-family:system-ui;">
  <h2>Merge Cover Letter + Resume</h2>
  <form action="/merge" method="post" enctype="multipart/form-data">
    <label>Your Name</label><br/>
    <input type="text" name="applicant_name" style="width:100%;" /><br/><br/>
    <label>Title (optional)</label><br/>
    <input type="text" name="title" placeholder="Cover Letter" style="width:100%;" /><br/><br/>
    <label>Cover Letter Text</label><br/>
    <textarea name="cover_text" rows="10" style="width:100%;" required></textarea><br/><br/>
    <label>Resume (PDF)</label><br/>
    <input type="file" name="resume" accept="application/pdf" required /><br/><br/>
    <button type="submit">Create Combined PDF</button>
  </form>
</div>`
